package config

type AptchatConfModel struct {
	LogLevel         string   `mapstructure:"log_level"`
	LoginTokenExpiry string   `mapstructure:"login_token_expiry"`
	Mode             string   `mapstructure:"mode"`
	Server           Server   `mapstructure:"server"`
	DB               DB       `mapstructure:"db"`
	Auth             Auth     `mapstructure:"auth"`
	Aptos            Aptos    `mapstructure:"aptos"`
	Firebase         Firebase `mapstructure:"firebase"`
	Chat             Chat     `mapstructure:"chat"`
}

type Server struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	APIPrefix  string `mapstructure:"api_prefix"`
	APIVersion string `mapstructure:"api_version"`
	ClientURL  string `mapstructure:"client_url"`
}

type DB struct {
	Host     string `mapstructure:"host"`
	Keyspace string `mapstructure:"keyspace"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Auth struct {
	NonceTTL     int `mapstructure:"nonce_ttl"`
	CookieMaxAge int `mapstructure:"cookie_max_age"`
}

type Aptos struct {
	Daemon          AptosDaemon `mapstructure:"daemon"`
	DeployerAddress string      `mapstructure:"deployer_address"`
	StablecoinType  string      `mapstructure:"stablecoin_type"`
}

type AptosDaemon struct {
	Mainnet AptosNet `mapstructure:"mainnet"`
	Testnet AptosNet `mapstructure:"testnet"`
}

type AptosNet struct {
	Address string `mapstructure:"address"`
}

type Firebase struct {
	Path string `mapstructure:"path"`
}

type Chat struct {
	MessageTTL int `mapstructure:"message_ttl"`
}
