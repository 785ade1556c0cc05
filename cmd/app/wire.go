//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/accounts/internal/bootstrap"
	"github.com/yanqian/accounts/internal/domain/account"
	"github.com/yanqian/accounts/internal/infra/config"
	httpiface "github.com/yanqian/accounts/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideCredentialConfig,
		provideCredentialVerifier,
		provideDirectory,
		account.NewService,
		account.NewManager,
		httpiface.NewAccountHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
