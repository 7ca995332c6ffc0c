package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// loadSettings resolves the config file from the --config flag or the search
// path and loads it. Failures are logged and reported through the bool.
func loadSettings(cmd *cobra.Command) (*entities.Settings, bool) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Errorf(
				"no config file found: %v\nSpecify one with --config or create reposync.yaml",
				err,
			)
			return nil, false
		}
	}

	logger.Infof("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return nil, false
	}
	return settings, true
}

// parseProtocolFlag maps the optional --protocol flag to a Protocol. An
// empty flag defers to the configured default; an invalid value is logged
// and aborts the command.
func parseProtocolFlag(raw string) (entities.Protocol, bool) {
	if raw == "" {
		return "", true
	}
	protocol, err := entities.ParseProtocol(raw)
	if err != nil {
		logger.Errorf("invalid --protocol: %v", err)
		return "", false
	}
	return protocol, true
}

func entityKind(user bool) entities.EntityKind {
	if user {
		return entities.EntityUser
	}
	return entities.EntityOrganization
}
