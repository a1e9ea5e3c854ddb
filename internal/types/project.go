package types

type Project struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PDFFilename *string `json:"pdf_filename"`
}

type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectDetail is a project with its palette resolved.
type ProjectDetail struct {
	Project
	Threads []Thread `json:"threads"`
}

type Assignment struct {
	ProjectID uint `json:"projectId"`
	ThreadID  uint `json:"threadId"`
}
