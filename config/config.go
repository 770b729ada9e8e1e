package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	OpenAI struct {
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"openai"`
	Data struct {
		CollegeCSV  string `yaml:"college_csv"`   // 大学数据集文件路径
		ProfileCSV  string `yaml:"profile_csv"`   // 用户档案文件路径
		CacheTTLSec int    `yaml:"cache_ttl_sec"` // 数据集缓存有效期（秒）
	} `yaml:"data"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`  // 请求超时，单位：秒
		ResponseSec int `yaml:"response_sec"` // 响应超时，单位：秒
		IdleSec     int `yaml:"idle_sec"`     // 空闲超时，单位：秒
	} `yaml:"timeouts"`
}

// 默认值
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.4
	DefaultMaxTokens   = 2500
	DefaultCollegeCSV  = "data/us_universities_enriched.csv"
	DefaultProfileCSV  = "data/accounts.csv"
	DefaultCacheTTLSec = 300
)

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		applyDefaults(&cfg)
		applyEnvOverrides(&cfg)
		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

// applyDefaults 为未配置的字段填入默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = DefaultModel
	}
	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = DefaultTemperature
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = DefaultMaxTokens
	}

	if cfg.Data.CollegeCSV == "" {
		cfg.Data.CollegeCSV = DefaultCollegeCSV
	}
	if cfg.Data.ProfileCSV == "" {
		cfg.Data.ProfileCSV = DefaultProfileCSV
	}
	if cfg.Data.CacheTTLSec <= 0 {
		cfg.Data.CacheTTLSec = DefaultCacheTTLSec
	}
}

// applyEnvOverrides 从环境变量中加载敏感信息
func applyEnvOverrides(cfg *Config) {
	// API密钥只从环境变量读取，避免写入配置文件
	if envAPIKey := os.Getenv("OPENAI_API_KEY"); envAPIKey != "" {
		cfg.OpenAI.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
		cfg.OpenAI.BaseURL = envBaseURL
	}
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	// 设置服务器地址
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	cfg.OpenAI.Model = getenv("OPENAI_MODEL", DefaultModel)
	cfg.Data.CollegeCSV = getenv("COLLEGE_CSV", DefaultCollegeCSV)
	cfg.Data.ProfileCSV = getenv("PROFILE_CSV", DefaultProfileCSV)

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
