package services

import "probuild/internal/models"

// QuoteTransitions lists the allowed quote status moves.
var QuoteTransitions = map[models.QuoteStatus]map[models.QuoteStatus]bool{
	models.QuoteDraft:    {models.QuoteSent: true, models.QuoteDeclined: true},
	models.QuoteSent:     {models.QuoteRevised: true, models.QuoteApproved: true, models.QuoteDeclined: true},
	models.QuoteRevised:  {models.QuoteSent: true, models.QuoteApproved: true, models.QuoteDeclined: true},
	models.QuoteApproved: {},
	models.QuoteDeclined: {models.QuoteRevised: true},
}

// quoteLeadStage is the lead stage a quote's status pushes its lead to.
var quoteLeadStage = map[models.QuoteStatus]models.LeadStage{
	models.QuoteSent:     models.StageQuoteSent,
	models.QuoteRevised:  models.StageQuoteRevised,
	models.QuoteApproved: models.StageApproved,
	models.QuoteDeclined: models.StageDeclined,
}

func canTransition[S comparable](current, to S, table map[S]map[S]bool) bool {
	var zero S
	if current == zero {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
