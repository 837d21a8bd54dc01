package terms

import (
	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var templateMapper = crud.Mapper[domain.TermsAndConditionsTemplate, TemplateDTO]{
	Apply: func(dto *TemplateDTO, e *domain.TermsAndConditionsTemplate) {
		e.Title = dto.Title
		e.Content = dto.Content
		e.TermsVersion = dto.TermsVersion
		if dto.IsActive != nil {
			e.IsActive = *dto.IsActive
		}
	},
	ToDTO: func(e *domain.TermsAndConditionsTemplate) TemplateDTO {
		active := e.IsActive
		return TemplateDTO{
			Audit:        crud.AuditOf(&e.BaseModel),
			Title:        e.Title,
			Content:      e.Content,
			TermsVersion: e.TermsVersion,
			IsActive:     &active,
		}
	},
}

var templateFields = pkg.NewFieldSet(map[string]pkg.Field{
	"title":        pkg.Eq("title", pkg.KindString),
	"titlePrefix":  pkg.Prefix("title"),
	"termsVersion": pkg.Eq("version_label", pkg.KindString),
	"isActive":     pkg.Eq("is_active", pkg.KindBool),
})

var termsMapper = crud.Mapper[domain.DistributorTermsAndConditions, DistributorTermsDTO]{
	Apply: func(dto *DistributorTermsDTO, e *domain.DistributorTermsAndConditions) {
		e.DistributorID = dto.DistributorID
		e.TemplateID = dto.TemplateID
		e.Title = dto.Title
		e.Content = dto.Content
		e.TermsVersion = dto.TermsVersion
	},
	ToDTO: func(e *domain.DistributorTermsAndConditions) DistributorTermsDTO {
		return DistributorTermsDTO{
			Audit:         crud.AuditOf(&e.BaseModel),
			DistributorID: e.DistributorID,
			TemplateID:    e.TemplateID,
			Title:         e.Title,
			Content:       e.Content,
			TermsVersion:  e.TermsVersion,
			Status:        e.Status,
			SignedBy:      e.SignedBy,
			SignedDate:    e.SignedDate,
		}
	},
}

var termsFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId":  pkg.Eq("distributor_id", pkg.KindUUID),
	"templateId":     pkg.Eq("template_id", pkg.KindUUID),
	"termsVersion":   pkg.Eq("version_label", pkg.KindString),
	"status":         pkg.Eq("status", pkg.KindString),
	"signedBy":       pkg.Eq("signed_by", pkg.KindString),
	"signedDateFrom": pkg.Gte("signed_date", pkg.KindTime),
	"signedDateTo":   pkg.Lte("signed_date", pkg.KindTime),
})
