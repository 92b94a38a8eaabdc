package output

// Processor applies output transformations based on configuration.
type Processor struct {
	config *Config
	table  *Table
}

// NewProcessor creates a new output processor. A nil config uses DefaultConfig
// and a nil table uses DefaultTable.
func NewProcessor(config *Config, table *Table) *Processor {
	if config == nil {
		config = DefaultConfig()
	}
	if table == nil {
		table = DefaultTable()
	}
	return &Processor{
		config: config.Validate(),
		table:  table,
	}
}

// Config returns the processor's configuration.
func (p *Processor) Config() *Config {
	return p.config
}

// Table returns the projection table.
func (p *Processor) Table() *Table {
	return p.table
}

// ProcessList projects, masks and truncates filtered records of one entity type.
// limit is the per-request limit; zero uses the configured maximum.
func (p *Processor) ProcessList(entity EntityType, items []map[string]interface{}, limit int) *ProcessingResult {
	result := &ProcessingResult{
		Items:    items,
		Warnings: make([]TruncationWarning, 0),
	}

	if len(items) == 0 {
		result.Items = []map[string]interface{}{}
		return result
	}

	processed := items

	if rule, ok := p.table.Rule(entity); ok && p.config.Project {
		processed = ProjectAll(processed, rule)
	}

	if p.config.MaskSecrets {
		processed = MaskSecretsInList(processed)
	}

	// Truncation last so warnings reflect the final count.
	truncated, warning := TruncateResponse(processed, EffectiveLimit(limit, p.config.MaxItems))
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}

	result.Items = truncated

	return result
}

// ProcessSingle projects and masks a single record.
func (p *Processor) ProcessSingle(entity EntityType, item map[string]interface{}) map[string]interface{} {
	if item == nil {
		return nil
	}

	processed := item

	if rule, ok := p.table.Rule(entity); ok && p.config.Project {
		processed = Project(processed, rule)
	}
	if p.config.MaskSecrets {
		processed = MaskSecrets(processed)
	}

	return processed
}

// ProcessRaw masks an unprojected result such as a mutating call's task descriptor.
func (p *Processor) ProcessRaw(v interface{}) interface{} {
	if !p.config.MaskSecrets {
		return v
	}
	return MaskValue(v)
}
