package service

import (
	"net/http"
	"sort"
	"strings"

	"leadqualify/internal/contract"
	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils/apierror"
)

type tierText struct {
	tier entity.AnswerTier
	text string
}

// tierTexts flattens a question input into its three tiers, trimmed.
// Blank tiers stay in the slice; callers skip them.
func tierTexts(in *contract.QuestionInput) []tierText {
	return []tierText{
		{entity.TierCold, strings.TrimSpace(in.RespostaFria)},
		{entity.TierWarm, strings.TrimSpace(in.RespostaMorna)},
		{entity.TierHot, strings.TrimSpace(in.RespostaQuente)},
	}
}

func normalizeSegment(raw string) entity.SegmentType {
	seg := entity.SegmentType(strings.TrimSpace(raw))
	if seg == "" {
		return entity.SegmentGeneral
	}
	return seg
}

func blankNameError() *apierror.StructuredError {
	verr := apierror.NewStructured(http.StatusBadRequest)
	verr.Add("name", "This field is required")
	return verr
}

// sortQuestionResponses orders by stored position, stable so accidental ties
// keep their relative order.
func sortQuestionResponses(questions []*contract.QuestionResponse) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Ordem < questions[j].Ordem
	})
}

func applyAnswer(resp *contract.QuestionResponse, tier entity.AnswerTier, text string, points int) {
	switch tier {
	case entity.TierCold:
		resp.RespostaFria = text
		resp.PontosFria = points
	case entity.TierWarm:
		resp.RespostaMorna = text
		resp.PontosMorna = points
	case entity.TierHot:
		resp.RespostaQuente = text
		resp.PontosQuente = points
	}
}
