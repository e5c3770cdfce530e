package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SeedCategory struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

type SeedProduct struct {
	Category      string `yaml:"category"`
	Name          string `yaml:"name"`
	Slug          string `yaml:"slug"`
	Description   string `yaml:"description"`
	Price         string `yaml:"price"`
	ImageURL      string `yaml:"image_url"`
	Stock         int32  `yaml:"stock"`
	IsFeatured    bool   `yaml:"is_featured"`
	BotanicalName string `yaml:"botanical_name"`
	CareLevel     string `yaml:"care_level"`
	Sunlight      string `yaml:"sunlight"`
	WaterNeeds    string `yaml:"water_needs"`
	Height        string `yaml:"height"`
}

type SeedConfig struct {
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SeedConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
