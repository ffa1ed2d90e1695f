package vat

import (
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"github.com/smallbiznis/classifieds/internal/vat/repository"
	"github.com/smallbiznis/classifieds/internal/vat/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vat.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(svc vatdomain.Service) vatdomain.Resolver { return svc }),
)
