package config

type Storage struct {
	// Path of the bbolt database file holding both collection slots.
	Path string `env:"STORAGE_PATH" envDefault:"openbar.db"`
}
