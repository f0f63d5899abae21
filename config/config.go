package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

const configFilePath = "/etc/aptchat/config.yaml"

var (
	aptchatConf *AptchatConfModel
	PathPrefix  string
)

func LoadConfig() (*AptchatConfModel, error) {
	if err := loadViperConfig(configFilePath); err != nil {
		return nil, err
	}

	return aptchatConf, nil
}

func loadViperConfig(filePath string) error {
	viper.SetConfigFile(filePath)
	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading viper config: %w", err)
	}

	setEnvConf()
	setDefault()

	viper.WatchConfig()

	err = viper.Unmarshal(&aptchatConf)
	if err != nil {
		return fmt.Errorf("error loading viper config to struct: %w", err)
	}

	// /api/v1
	PathPrefix, err = url.JoinPath(aptchatConf.Server.APIPrefix, aptchatConf.Server.APIVersion)
	if err != nil {
		return err
	}

	return nil
}

func setEnvConf() {
	viper.BindEnv("db.username", "APTCHAT_DB_USERNAME")
	viper.BindEnv("db.password", "APTCHAT_DB_PASSWORD")
	viper.BindEnv("aptos.deployer_address", "APTCHAT_DEPLOYER_ADDRESS")
}

func setDefault() {
	viper.SetDefault("mode", "stage")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("login_token_expiry", "2h")
	// nonce lives 5 minutes, cookie as long as the token
	viper.SetDefault("auth.nonce_ttl", 300)
	viper.SetDefault("auth.cookie_max_age", 7200)
	viper.SetDefault("chat.message_ttl", 0)
	viper.SetDefault("aptos.stablecoin_type", "0x1::aptos_coin::AptosCoin")
}

// GetConfig returns env config
func GetConfig() *AptchatConfModel {
	return aptchatConf
}
