package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Service 是宿主服务（riced）的配置。
type Service struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Rec     RecConfig     `yaml:"recommendation"`
}

// ServerConfig 是 HTTP 服务配置。
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig 选择存储后端。
type StorageConfig struct {
	// Backend: memory / sqlite / redis
	Backend string `yaml:"backend"`

	// SQLitePath 是 sqlite 后端的数据库文件路径
	SQLitePath string `yaml:"sqlite_path"`

	// RedisAddr / RedisDB 是 redis 后端的连接参数
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

// CatalogConfig 是目录数据源配置。
type CatalogConfig struct {
	// CSVPath 是目录 CSV 文件路径；非空时启动加载并写入存储
	CSVPath string `yaml:"csv_path"`

	// Watch 为 true 时监听 CSV 文件变化，自动重载目录并重建模型
	Watch bool `yaml:"watch"`
}

// RecConfig 是推荐行为配置。
type RecConfig struct {
	// DefaultN 是未指定 num_recommendations 时的列表长度
	DefaultN int `yaml:"default_n"`

	// Rule 是可选的 CEL 质量规则，过滤低分候选
	Rule string `yaml:"rule"`
}

// LoadService 从 YAML 文件加载服务配置并填充默认值。
func LoadService(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Service
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults 填充缺省配置。
func (c *Service) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/rice.db"
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = "127.0.0.1:6379"
	}
	if c.Rec.DefaultN == 0 {
		c.Rec.DefaultN = 10
	}
}
