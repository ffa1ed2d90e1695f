package freequota

import (
	"github.com/smallbiznis/classifieds/internal/freequota/repository"
	"github.com/smallbiznis/classifieds/internal/freequota/service"
	"go.uber.org/fx"
)

var Module = fx.Module("freequota.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewEvaluator),
)
