package domain

// ContractRequest is one fill-and-deliver request.
type ContractRequest struct {
	// Fields holds raw input keyed by input key.
	Fields map[string]string

	// DryRun stops after generation and keeps the file.
	DryRun bool
}

// GeneratedContract is the output of one fill pass.
type GeneratedContract struct {
	// Filename is the base name of the output file.
	Filename string

	// Path is the full output file path.
	Path string

	// Matched lists the substituted tokens in first-match order.
	Matched []string

	// Unresolved lists Field Map tokens never found in the template.
	Unresolved []string
}

// ContractResult is the outcome of a processed request.
type ContractResult struct {
	ID         string
	Success    bool
	Filename   string
	Locatee    string
	Unresolved []string
	Delivered  bool
	Message    string
}
