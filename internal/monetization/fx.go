package monetization

import (
	"github.com/smallbiznis/classifieds/internal/monetization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("monetization.service",
	fx.Provide(service.New),
)
