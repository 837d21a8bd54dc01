package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

const actorHeader = "X-Actor-ID"

var actorPattern = regexp.MustCompile(`^[A-Za-z0-9._@:-]{1,100}$`)

// ActorConfig controls how the acting user is identified.
type ActorConfig struct {
	// Enabled requires an HS256 bearer token on every non-public path. The
	// token subject becomes the actor.
	Enabled bool
	Secret  []byte
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// PublicPaths skip the token check. An entry ending in "*" matches by prefix.
	PublicPaths []string
}

// Actor stores the caller's identity in the request context with
// domain.WithActor, where services read it for the audit fields.
//
// With auth disabled the X-Actor-ID header is trusted as is; without it the
// services fall back to domain.SystemActor.
func Actor(cfg ActorConfig) gin.HandlerFunc {
	parser := jwt.NewParser(parserOptions(cfg)...)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			if actor := strings.TrimSpace(c.GetHeader(actorHeader)); actorPattern.MatchString(actor) {
				setActor(c, actor)
			}
			c.Next()
			return
		}

		if isPublicPath(cfg.PublicPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing bearer token")
			return
		}

		var claims jwt.RegisteredClaims
		_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return cfg.Secret, nil
		})
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		if claims.Subject == "" {
			unauthorized(c, "token has no subject")
			return
		}

		setActor(c, claims.Subject)
		c.Next()
	}
}

func parserOptions(cfg ActorConfig) []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return opts
}

func setActor(c *gin.Context, actor string) {
	c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isPublicPath(paths []string, path string) bool {
	for _, p := range paths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if p == path {
			return true
		}
	}
	return false
}

func unauthorized(c *gin.Context, reason string) {
	pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, reason, nil))
	c.Abort()
}
