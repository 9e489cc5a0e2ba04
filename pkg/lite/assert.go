package lite

import (
	"github.com/rollkit/go-lite-abci/pkg/header"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

var (
	_ Header                       = (*header.Header)(nil)
	_ Validator                    = validator.Info{}
	_ ValidatorSet[validator.Info] = (*validator.Set)(nil)
)
