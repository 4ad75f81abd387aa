package config

import (
	"fmt"
	"net/url"
	"os"
)

type (
	APP struct {
		Name     string
		Host     string
		Port     string
		Env      string
		EntryURL string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		UploadRoot string
		ChunkDir   string
	}
	Mail struct {
		Sender    string
		Feedback  string
		APIURL    string
		SecretKey string
	}
	Vault struct {
		Addr       string
		Token      string
		SecretName string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		Mail    Mail
		Vault   Vault
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name:     getEnv("SERVICE_NAME", "filetag"),
		Host:     getEnv("SERVICE_HOST", ""),
		Port:     getEnv("SERVICE_PORT", "8080"),
		Env:      getEnv("SERVICE_ENV", ""),
		EntryURL: getEnv("SERVICE_ENTRY_URL", "http://filetag.online"),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	storage := Storage{
		UploadRoot: getEnv("STORAGE_UPLOAD_ROOT", "uploads"),
		ChunkDir:   getEnv("STORAGE_CHUNK_DIR", "tmp"),
	}
	mail := Mail{
		Sender:    getEnv("MAIL_SENDER", "no-reply@filetag.online"),
		Feedback:  getEnv("MAIL_FEEDBACK", "feedback@filetag.online"),
		APIURL:    getEnv("MAIL_API_URL", "https://api.sendgrid.com/v3/mail/send"),
		SecretKey: getEnv("SENDGRID_API_KEY", ""),
	}
	vault := Vault{
		Addr:       getEnv("VAULT_ADDR", ""),
		Token:      getEnv("VAULT_TOKEN", ""),
		SecretName: getEnv("VAULT_MAIL_SECRET", "filetag-sendgrid-notification-api-key"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "filetag.notifications"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "filetag.mail"),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		Mail:    mail,
		Vault:   vault,
		MQ:      mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

// DownloadURL builds the public link served for an access key.
func (c Config) DownloadURL(shortcutKey string) string {
	return c.App.EntryURL + "/d/" + shortcutKey
}
