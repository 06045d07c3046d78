package intent

import "regexp"

// rule is a single weighted pattern inside a group. Patterns are compiled
// once at package init; matching against them is lock-free.
type rule struct {
	re         *regexp.Regexp
	name       string
	confidence float64
}

// group binds an intent to its rules. Groups are evaluated in declaration
// order and that order is the tie-breaker when two groups reach the same
// confidence, so the slice below is priority-sorted: specific intents first,
// broad catch-alls last.
type group struct {
	intent string
	rules  []rule
}

func p(expr string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + expr)
}

var patternGroups = []group{
	{
		intent: Help,
		rules: []rule{
			{p(`\b(help|assist|what can|how to|guide|aide|comment)\b`), "help_keyword", 0.95},
			{p(`^\s*(hi|hello|hey|bonjour|salut)([\s!,.]|$)`), "greeting", 0.95},
			{p(`\b(what (can|do) you|qu['’]est-ce que tu|que peux-tu)\b`), "capability_query", 0.90},
		},
	},
	{
		intent: BlockchainAudit,
		rules: []rule{
			{p(`\b(blockchain|proof|prove|verify|audit|trace|prouv\w*|vérif\w*)\b.*\b(booking|reservation|réservation|transaction|ref|réf)`), "blockchain_booking", 0.90},
			{p(`\b(blockchain|proof|prove|verify|audit|prouv\w*|vérif\w*)\b`), "audit_keyword", 0.85},
		},
	},
	{
		intent: OperatorAnalytics,
		rules: []rule{
			{p(`\b(operator|opérateur)s?\b.*\b(analytics|performance|overview|analyse|aperçu)`), "operator_analytics_explicit", 0.92},
			{p(`\b(ai overview|aperçu ia|business analyst|ba report)\b`), "ai_overview", 0.90},
			{p(`\b(management score|planning quality|operator behavior)\b`), "operator_metrics", 0.88},
			{p(`\b(forecast\w*|predict\w*|prévision\w*)\b.*\b(month|mois|throughput|capacity|capacité)`), "forecast_request", 0.85},
		},
	},
	{
		intent: PassageHistory,
		rules: []rule{
			{p(`\b(passage|entry|entries|truck|vehicle|camion|véhicule)s?\b.*\b(history|yesterday|past|previous|historique|hier|passé\w*|précédent\w*)`), "passage_history_explicit", 0.90},
			{p(`\b(hier|yesterday)\b.*\b(passage|entry|entries|truck|camion|entrée)`), "yesterday_passage", 0.88},
			{p(`\b(show|list|get|afficher|lister|montre\w*)\b.*\b(passage|entry|entries|truck|camion)`), "show_passage", 0.85},
		},
	},
	{
		intent: BookingCreate,
		rules: []rule{
			{p(`\b(book|reserve|schedule|create|make|réserv\w*|planifi\w*|cré\w*)\b.*\b(slot|time|appointment|booking|reservation|créneau\w*|heure|rendez-vous|réservation)`), "book_slot_explicit", 0.90},
			{p(`\b(book|reserve|réserv\w*)\w*\b.*\b(terminal|gate|porte)\b`), "book_terminal", 0.88},
			{p(`\b(new booking|nouvelle réservation)\b`), "new_booking", 0.88},
		},
	},
	{
		intent: SlotRecommend,
		rules: []rule{
			{p(`\b(recommend\w*|recommand\w*|suggest\w*|sugg[èé]r\w*|conseil\w*|best|optimal|meilleur\w*)\b.*\b(slot|time|créneau\w*|heure)`), "recommend_slot_explicit", 0.92},
			{p(`\b(which|what|quel\w*)\b.*\b(slot|time|créneau\w*)\b.*\b(best|better|recommend\w*|meilleur\w*|conseillé)`), "which_best_slot", 0.90},
			{p(`\b(alternative|other|autre)s?\b.*\b(slot|time|créneau\w*)`), "alternative_slot", 0.85},
		},
	},
	{
		intent: SlotAvailability,
		rules: []rule{
			{p(`\b(available|availability|free|open|disponible\w*|disponibilité\w*|libre)\b.*\b(slot|time|appointment|créneau\w*|heure|rendez-vous)`), "slot_availability_explicit", 0.90},
			{p(`\b(slot|time|appointment|créneau\w*|heure)s?\b.*\b(available|free|open|disponible\w*|libre)`), "slot_available_reversed", 0.90},
			{p(`\b(check|voir|vérifi\w*)\b.*\b(availability|disponibilité\w*)`), "check_availability", 0.82},
			{p(`\b(availability|disponibilité\w*)\b`), "availability_keyword", 0.80},
		},
	},
	{
		intent: BookingStatus,
		rules: []rule{
			{p(`\b(status|track\w*|where|check|find|locate|statut|suiv\w*|où|trouv\w*|localis\w*)\b.*\b(booking|reservation|reference|réservation|référence|ref|réf)`), "status_booking_explicit", 0.90},
			{p(`\b(booking|reservation|réservation|ref|réf)\w*\b.*\b(status|track\w*|where|check|statut|suiv\w*|où)`), "booking_status_reversed", 0.90},
			{p(`\b(ref|réf)[-\s]?\d{3,}\b`), "booking_ref_pattern", 0.85},
			{p(`\b(where is|où est|when|quand)\b.*\b(booking|reservation|réservation)`), "where_booking", 0.82},
		},
	},
	{
		intent: Smalltalk,
		rules: []rule{
			{p(`\b(how are you|comment ça va|ça va)\b`), "how_are_you", 0.75},
			{p(`^\s*(ok|okay|d['’]accord|merci|thanks|thank you|oui|yes|non|no)([\s!,.]|$)`), "acknowledgment", 0.70},
			{p(`^\s*(good|nice|cool|super|bien|bon)([\s!,.]|$)`), "positive_short", 0.65},
		},
	},
}
