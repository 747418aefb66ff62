package config

var AppVersion = "DEVELOPMENT"

const (
	AppName          = "zaparoo-configgen"
	LogFile          = "configgen.log"
	CfgFile          = "configgen.toml"
	DefaultConfigDir = "/userdata/system/dcg/namco2x6"
)
