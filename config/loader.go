package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Load 从 YAML 文件加载配置。
func Load(file string) (Config, error) {
	var c Config
	b, err := os.ReadFile(file)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

// MustLoad 从 YAML 文件加载配置（失败 panic）。
func MustLoad(file string) Config {
	c, err := Load(file)
	if err != nil {
		panic(err)
	}
	return c
}

// FromEnv 从环境变量加载配置（FABRIC_ 前缀，见字段 tag）。
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	return c, nil
}

// MustFromEnv 从环境变量加载配置（失败 panic）。
func MustFromEnv() Config {
	c, err := FromEnv()
	if err != nil {
		_ = envconfig.Usage("", &c)
		panic(err)
	}
	return c
}
