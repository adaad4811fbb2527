package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Factors: FactorsConfig{
			Utilization:  0.75,
			Availability: 0.875,
			MinAgents:    2,
			FallbackAHT:  300,
		},
		Sheets: SheetsConfig{
			Calls: "Calls",
			AHT:   "AHT",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Factors = mergeFactorsConfig(loaded.Factors, defaults.Factors)
	result.Sheets = mergeSheetsConfig(loaded.Sheets, defaults.Sheets)
	result.Export = mergeExportConfig(loaded.Export, defaults.Export)

	return result
}

func mergeFactorsConfig(loaded, defaults FactorsConfig) FactorsConfig {
	result := FactorsConfig{}

	// Utilization: use loaded if non-zero
	if loaded.Utilization != 0 {
		result.Utilization = loaded.Utilization
	} else {
		result.Utilization = defaults.Utilization
	}

	// Availability: use loaded if non-zero
	if loaded.Availability != 0 {
		result.Availability = loaded.Availability
	} else {
		result.Availability = defaults.Availability
	}

	// MinAgents: use loaded if non-zero
	if loaded.MinAgents != 0 {
		result.MinAgents = loaded.MinAgents
	} else {
		result.MinAgents = defaults.MinAgents
	}

	// FallbackAHT: use loaded if non-zero
	if loaded.FallbackAHT != 0 {
		result.FallbackAHT = loaded.FallbackAHT
	} else {
		result.FallbackAHT = defaults.FallbackAHT
	}

	return result
}

func mergeSheetsConfig(loaded, defaults SheetsConfig) SheetsConfig {
	result := SheetsConfig{}

	// Calls: use loaded if non-empty
	if loaded.Calls != "" {
		result.Calls = loaded.Calls
	} else {
		result.Calls = defaults.Calls
	}

	// AHT: use loaded if non-empty
	if loaded.AHT != "" {
		result.AHT = loaded.AHT
	} else {
		result.AHT = defaults.AHT
	}

	return result
}

func mergeExportConfig(loaded, defaults ExportConfig) ExportConfig {
	result := ExportConfig{}

	// Dir: use loaded if non-empty
	if loaded.Dir != "" {
		result.Dir = loaded.Dir
	} else {
		result.Dir = defaults.Dir
	}

	return result
}
