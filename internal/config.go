package internal

import (
	"encoding/json"
	"io"
	"os"
)

type Config struct {
	DBName         string `json:"db-name"`
	HTTPServerPort uint16 `json:"http-server-port"`
	ReadTimeout    int64  `json:"read-timeout"`
	WriteTimeout   int64  `json:"write-timeout"`
	SecretKey      string `json:"secret-key"`
	ReapIntervalS  int64  `json:"reap-interval"`
}

func DefaultConfig() *Config {
	return &Config{
		DBName:         "huddle.db",
		HTTPServerPort: 8080,
		ReadTimeout:    10,
		WriteTimeout:   10,
		SecretKey:      "change-me",
		ReapIntervalS:  60,
	}
}

// LoadConfig reads the .cfg file in the given folder. A missing file is
// not an error: defaults apply.
func LoadConfig(folderPath string) (*Config, error) {
	file, err := os.OpenFile(folderPath+"/.cfg", os.O_RDONLY, 0755)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err = json.Unmarshal(payload, config); err != nil {
		return nil, err
	}

	return config, nil
}
