package price

import (
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	"github.com/smallbiznis/classifieds/internal/price/repository"
	"github.com/smallbiznis/classifieds/internal/price/service"
	"go.uber.org/fx"
)

var Module = fx.Module("price.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(svc pricedomain.Service) pricedomain.Resolver { return svc }),
)
