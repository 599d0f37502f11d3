package services

import (
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
	portssvc "github.com/delci/zapatos-api/internal/core/ports/services"
)

// NewServiceContainer creates a service container with initialized services.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Client:    NewClientService(repos.ClientRepo),
		Product:   NewProductService(repos.ProductRepo),
		Account:   NewAccountService(repos.AccountRepo, repos.ProductRepo, repos.ClientRepo),
		Reporting: NewReportingService(repos.ClientRepo, repos.ProductRepo, repos.AccountRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.ClientSvcFacade    = (*ClientService)(nil)
	_ portssvc.ProductSvcFacade   = (*ProductService)(nil)
	_ portssvc.AccountSvcFacade   = (*AccountService)(nil)
	_ portssvc.ReportingSvcFacade = (*ReportingService)(nil)
)
