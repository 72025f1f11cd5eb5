package report

import (
	"bytes"
	"encoding/json"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
)

const templateName = "material_report"

var ErrNoMaintainers = errors.New("no maintainer to report to")

// Report is a problem a visitor found with a material (broken link, wrong file...).
type Report struct {
	Reason string `json:"reason" validate:"required,max=2000"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func (r *Report) Validate(validate *validator.Validate) error {
	r.Reason = core.CleanString(r.Reason)
	r.Email = core.CleanString(r.Email, true)
	return validate.Struct(r)
}

type (
	Service struct {
		mailSvc     core.EmailService
		maintainers []mail.Address
	}

	templateData struct {
		Material catalog.Material
		Reason   string
		Email    string
	}
)

func NewService(conf *core.Config, mailSvc core.EmailService) *Service {
	return &Service{
		mailSvc:     mailSvc,
		maintainers: conf.MaintainerEmails(),
	}
}

// ReportMaterial mails the report on m to the maintainers, with the material record attached.
// The report must have been validated.
func (svc *Service) ReportMaterial(m catalog.Material, r Report) error {
	if len(svc.maintainers) == 0 {
		return ErrNoMaintainers
	}

	msg := &core.EmailMessage{
		To:           svc.maintainers,
		Subject:      "Material reported: " + m.Title,
		TemplateName: templateName,
		TemplateData: templateData{Material: m, Reason: r.Reason, Email: r.Email},
	}
	if r.Email != "" {
		msg.ReplyTo = &mail.Address{Address: r.Email}
	}

	record, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding material")
	}
	if err := msg.Attach(bytes.NewReader(record), "material.json", "application/json"); err != nil {
		return errors.Wrap(err, "attaching material")
	}

	svc.mailSvc.SendMessages(msg)
	return nil
}
