package executors

import (
	"github.com/charmbracelet/log"

	"github.com/yurifrl/ynabel/pkg/config"
	"github.com/yurifrl/ynabel/pkg/parser"
	"github.com/yurifrl/ynabel/pkg/ynab"
)

type Executor struct {
	logger *log.Logger
	config *config.Config
	parser *parser.Parser
	ynab   *ynab.YNABClient
}

func New(logger *log.Logger, config *config.Config, ynab *ynab.YNABClient) *Executor {
	return &Executor{
		logger: logger,
		config: config,
		parser: parser.New(logger),
		ynab:   ynab,
	}
}
