package entity

// ValidationResult is the outcome of the document-class keyword check.
type ValidationResult struct {
	IsValid         bool     `json:"is_valid" yaml:"is_valid"`
	Confidence      float64  `json:"confidence" yaml:"confidence"`
	MatchedKeywords []string `json:"matched_keywords" yaml:"matched_keywords"`
	Error           string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Diagnostics describes how the text was acquired.
type Diagnostics struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	Method     string   `json:"method,omitempty" yaml:"method,omitempty"`
	UsedOCR    bool     `json:"used_ocr" yaml:"used_ocr"`
	Pages      int      `json:"pages,omitempty" yaml:"pages,omitempty"`
	TextLength int      `json:"text_length" yaml:"text_length"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	ElapsedMS  int64    `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// ParseResult is the only object returned across the parse boundary.
type ParseResult[T any] struct {
	Success     bool              `json:"success" yaml:"success"`
	Data        *T                `json:"data,omitempty" yaml:"data,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode   string            `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Validation  *ValidationResult `json:"validation,omitempty" yaml:"validation,omitempty"`
	Diagnostics *Diagnostics      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
