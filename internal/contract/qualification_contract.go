package contract

// Action discriminates the rubric endpoints' single-POST dispatch payload.
type Action string

const (
	ActionList        Action = "list"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionMaterialize Action = "materialize"
)

// QuestionInput is one question of a rubric payload. Wire field names follow
// the domain language used by the authoring UIs. `ordem` is accepted but
// ignored on write: position is always the 1-based submission order.
// Questions with blank `pergunta` are skipped, as are blank tier answers.
type QuestionInput struct {
	Pergunta       string `json:"pergunta"`
	Peso           int    `json:"peso"`
	Ordem          int    `json:"ordem"`
	RespostaFria   string `json:"resposta_fria"`
	RespostaMorna  string `json:"resposta_morna"`
	RespostaQuente string `json:"resposta_quente"`
}

type QuestionResponse struct {
	ID             int64  `json:"id"`
	Pergunta       string `json:"pergunta"`
	Peso           int    `json:"peso"`
	Ordem          int    `json:"ordem"`
	RespostaFria   string `json:"resposta_fria"`
	RespostaMorna  string `json:"resposta_morna"`
	RespostaQuente string `json:"resposta_quente"`
	PontosFria     int    `json:"pontos_fria"`
	PontosMorna    int    `json:"pontos_morna"`
	PontosQuente   int    `json:"pontos_quente"`
}

// RubricResponse is shared by template and company listings; CompanyID is
// zero (and omitted) on the template side.
type RubricResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	SegmentType string              `json:"segment_type"`
	CompanyID   int64               `json:"company_id,omitempty"`
	Perguntas   []*QuestionResponse `json:"perguntas"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// RubricSummary is what create/update return: the header row only, never the
// nested tree.
type RubricSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SegmentType string `json:"segment_type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateRubricRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=120"`
	SegmentType string          `json:"segment_type" validate:"omitempty,oneof=geral produtos consorcio seguros"`
	Questions   []QuestionInput `json:"questions"`
}

// UpdateRubricRequest updates header fields independently of the question
// set: nil pointers leave the header field alone, a nil Questions slice
// leaves the subtree alone, and a non-nil (even empty) slice replaces it.
type UpdateRubricRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=120"`
	SegmentType *string         `json:"segment_type" validate:"omitempty,oneof=geral produtos consorcio seguros"`
	Questions   []QuestionInput `json:"questions"`
}

// RubricActionRequest is the dispatch envelope of the rubric endpoints.
// The bearer credential is accepted either via the Authorization header or
// the body `token` field; the body wins when both are present.
type RubricActionRequest struct {
	Action Action `json:"action"`
	Token  string `json:"token"`

	// update/delete
	ID int64 `json:"id"`

	// materialize (company endpoint only)
	TemplateID int64 `json:"template_id"`

	// create/update
	Name        *string         `json:"name"`
	SegmentType *string         `json:"segment_type"`
	Questions   []QuestionInput `json:"questions"`
}

type MaterializeRequest struct {
	Token      string `json:"token"`
	TemplateID int64  `json:"template_id"`
}
