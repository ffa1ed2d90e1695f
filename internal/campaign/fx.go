package campaign

import (
	"github.com/smallbiznis/classifieds/internal/campaign/repository"
	"github.com/smallbiznis/classifieds/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewResolver),
)
