package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags. Safe to call more than once.
// The currency tag accepts either case; services normalize it.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterAlias("currency", domain.CurrencyCodeRule)
		}
	})
}
