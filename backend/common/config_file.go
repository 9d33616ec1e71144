package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/evidentia.db\nUPLOAD_PATH=upload\nSESSION_SECRET=%s\nJWT_SECRET=%s\n"

// InitConfig applies the config file and then flag overrides. Flags win so
// a deployment can pin the port or upload root without editing the file.
func InitConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if *UploadPathFlag != "" {
		UploadPath = *UploadPathFlag
	}
	return nil
}

func loadConfigFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "evidentia", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	if _, err := configFile.WriteString(fmt.Sprintf(defaultConfigTemplate, uuid.New().String(), uuid.New().String())); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func applyConfigMap(configMap map[string]string) error {
	if configValue, ok := configMap["SESSION_SECRET"]; ok && configValue != "" {
		SessionSecret = configValue
	}

	if configValue, ok := configMap["SQLITE_PATH"]; ok && configValue != "" {
		SQLitePath = configValue
	}

	if configValue, ok := configMap["JWT_SECRET"]; ok && configValue != "" {
		JWTSecret = configValue
	}

	if configValue, ok := configMap["JWT_REFRESH_SECRET"]; ok && configValue != "" {
		JWTRefreshSecret = configValue
	} else if configValue, ok := configMap["JWT_SECRET"]; ok && configValue != "" {
		JWTRefreshSecret = configValue
	}

	if configValue, ok := configMap["SERVER_ADDRESS"]; ok && configValue != "" {
		ServerAddress = strings.TrimSuffix(configValue, "/")
	}

	if configValue, ok := configMap["UPLOAD_PATH"]; ok && configValue != "" {
		UploadPath = configValue
	}

	if configValue, ok := configMap["STORAGE_PUBLIC_BASE"]; ok && configValue != "" {
		StoragePublicBase = strings.TrimSuffix(configValue, "/")
	}

	if configValue, ok := configMap["MAIL_RELAY_ENDPOINT"]; ok && configValue != "" {
		MailRelayEndpoint = configValue
	}
	if configValue, ok := configMap["MAIL_RELAY_SERVICE_ID"]; ok && configValue != "" {
		MailRelayServiceID = configValue
	}
	if configValue, ok := configMap["MAIL_RELAY_TEMPLATE_ID"]; ok && configValue != "" {
		MailRelayTemplateID = configValue
	}
	if configValue, ok := configMap["MAIL_RELAY_USER_ID"]; ok && configValue != "" {
		MailRelayUserID = configValue
	}

	if configValue, ok := configMap["PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	if configValue, ok := configMap["MAX_UPLOAD_SIZE"]; ok && configValue != "" {
		sizeInt, err := strconv.ParseInt(configValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for MAX_UPLOAD_SIZE: %w", err)
		}
		MaxUploadSize = sizeInt
	}

	return nil
}
