package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Cloudinary Cloudinary
	Email      Email
	App        App
	Auth       Auth
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Email struct {
	SendGridAPIKey string
	FromName       string
	FromAddress    string
}

type App struct {
	Name             string
	FrontendBaseURL  string
	AccessCodeLength int
}

type Auth struct {
	JWTSecret string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("AUTO_MIGRATE", true)
	viper.SetDefault("CLOUDINARY_FOLDER", "ojt/signatures")
	viper.SetDefault("EMAIL_FROM_NAME", "OJT Portal")
	viper.SetDefault("APP_NAME", "OJT Portal")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	viper.SetDefault("ACCESS_CODE_LENGTH", 6)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.AutoMigrate = viper.GetBool("AUTO_MIGRATE")

	config.Cloudinary.CloudName = viper.GetString("CLOUDINARY_CLOUD_NAME")
	config.Cloudinary.APIKey = viper.GetString("CLOUDINARY_API_KEY")
	config.Cloudinary.APISecret = viper.GetString("CLOUDINARY_API_SECRET")
	config.Cloudinary.Folder = viper.GetString("CLOUDINARY_FOLDER")

	config.Email.SendGridAPIKey = viper.GetString("SENDGRID_API_KEY")
	config.Email.FromName = viper.GetString("EMAIL_FROM_NAME")
	config.Email.FromAddress = viper.GetString("EMAIL_FROM_ADDRESS")

	config.App.Name = viper.GetString("APP_NAME")
	config.App.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	config.App.AccessCodeLength = viper.GetInt("ACCESS_CODE_LENGTH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Str("frontend", config.App.FrontendBaseURL).
		Bool("cloudinary", config.Cloudinary.CloudName != "").
		Bool("sendgrid", config.Email.SendGridAPIKey != "").
		Msg("Config loaded")
	return &config, nil
}
