package vciph

import "fmt"

func resolveConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if cfg.q <= 0 {
		return config{}, fmt.Errorf("%w: quantization step %v", ErrInvalidOption, cfg.q)
	}
	if cfg.coeffRow < 0 || cfg.coeffRow >= BlockSize || cfg.coeffCol < 0 || cfg.coeffCol >= BlockSize {
		return config{}, fmt.Errorf("%w: coefficient (%d,%d)", ErrInvalidOption, cfg.coeffRow, cfg.coeffCol)
	}
	if cfg.coeffRow == 0 && cfg.coeffCol == 0 {
		// snapping DC shifts the whole block's brightness
		return config{}, fmt.Errorf("%w: DC coefficient not eligible", ErrInvalidOption)
	}
	if cfg.transform == nil {
		return config{}, fmt.Errorf("%w: nil transform", ErrInvalidOption)
	}
	return cfg, nil
}

func (c config) coeffIndex() int {
	return c.coeffRow*BlockSize + c.coeffCol
}
