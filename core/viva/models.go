package viva

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/labhub/core"
)

const (
	MinQuestions = 5
	MaxQuestions = 7
)

// Request holds the lab program the questions are about.
type Request struct {
	Aim  string `json:"aim" validate:"required"`
	Code string `json:"code" validate:"required"`
}

func (r *Request) Validate(validate *validator.Validate) error {
	r.Aim = core.CleanString(r.Aim)
	r.Code = core.CleanString(r.Code)
	return validate.Struct(r)
}

type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Set struct {
	Questions []Question `json:"questions"`
}
