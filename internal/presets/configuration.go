package presets

import "errors"

// Selection is the raw set of user choices, each an id or a label.
type Selection struct {
	Format      string
	Codec       string
	Quality     string
	Resolution  string
	DiscProfile string
}

// Configuration is the resolved, immutable set of choices for one run.
type Configuration struct {
	Format     string
	Codec      Codec
	Quality    Quality
	Resolution Resolution
	Disc       DiscProfile
}

// Resolve validates every choice in sel and builds a Configuration.
func Resolve(sel Selection) (Configuration, error) {
	var (
		cfg  Configuration
		err  error
		errs []error
	)
	if cfg.Format, err = LookupFormat(sel.Format); err != nil {
		errs = append(errs, err)
	}
	if cfg.Codec, err = LookupCodec(sel.Codec); err != nil {
		errs = append(errs, err)
	}
	if cfg.Quality, err = LookupQuality(sel.Quality); err != nil {
		errs = append(errs, err)
	}
	if cfg.Resolution, err = LookupResolution(sel.Resolution); err != nil {
		errs = append(errs, err)
	}
	if cfg.Disc, err = LookupDiscProfile(sel.DiscProfile); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Configuration{}, errors.Join(errs...)
	}
	return cfg, nil
}

// DiscTarget reports whether the run produces disc-compatible output.
func (c Configuration) DiscTarget() bool {
	return c.Disc.Enabled()
}

// OutputFormat returns the container extension written by the run.
func (c Configuration) OutputFormat() string {
	if c.DiscTarget() {
		return DiscContainer
	}
	return c.Format
}
