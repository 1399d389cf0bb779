package configuration

import "github.com/adampresley/configinator"

type Config struct {
	BaseURL                string `flag:"baseurl" env:"BASE_URL" default:"http://localhost:8080" description:"Public base URL of this site, used for OAuth callbacks"`
	CloudinaryCloudName    string `flag:"cloudname" env:"CLOUDINARY_CLOUD_NAME" default:"" description:"Cloudinary cloud name"`
	CloudinaryApiKey       string `flag:"cloudapikey" env:"CLOUDINARY_API_KEY" default:"" description:"Cloudinary API key"`
	CloudinaryApiSecret    string `flag:"cloudapisecret" env:"CLOUDINARY_API_SECRET" default:"" description:"Cloudinary API secret"`
	CloudinaryUploadPreset string `flag:"uploadpreset" env:"CLOUDINARY_UPLOAD_PRESET" default:"" description:"Optional Cloudinary upload preset applied to uploads"`
	CookieSecret           string `flag:"cookiesecret" env:"COOKIE_SECRET" default:"password" description:"Secret for encoding cookies"`
	GoogleClientID         string `flag:"googleclientid" env:"GOOGLE_CLIENT_ID" default:"" description:"Google OAuth client ID"`
	GoogleClientSecret     string `flag:"googleclientsecret" env:"GOOGLE_CLIENT_SECRET" default:"" description:"Google OAuth client secret"`
	Host                   string `flag:"host" env:"HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	LogLevel               string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxCoverWorkers        int    `flag:"mcw" env:"MAX_COVER_WORKERS" default:"10" description:"Maximum number of concurrent album cover lookups"`
	OwnerEmails            string `flag:"owneremails" env:"OWNER_EMAILS" default:"" description:"Comma-separated list of emails allowed to modify the gallery"`
	UploadFolderPrefix     string `flag:"uploadprefix" env:"UPLOAD_FOLDER_PREFIX" default:"kenshot" description:"Store folder prefix for uploads made through this site"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
