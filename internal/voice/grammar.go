package voice

import (
	"regexp"
	"strconv"
	"strings"
)

// rule is one entry of the pattern grammar. Rules are evaluated in slice
// order, so priority is the position in the table, not accidental code
// order. A rule matches either by regexp or, when re is nil, by substring
// containment: every group in contains must have at least one hit.
type rule struct {
	kind     string
	re       *regexp.Regexp
	contains [][]string
	build    func(m []string) *Intent
}

// englishRules encode the English grammar. Group priority: add-income,
// add-expense, query-data, check-stock, show-analytics.
var englishRules = []rule{
	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)add income (?:of )?(?:rupees? |rs\.? |₹)?(\d+)(?: for| from)? (.*)`), build: incomeParams},
	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)received (?:rupees? |rs\.? |₹)?(\d+)(?: for| from)? (.*)`), build: incomeParams},
	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)sale (?:of )?(?:rupees? |rs\.? |₹)?(\d+)(?: for)? (.*)`), build: incomeParams},

	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)add expense (?:of )?(?:rupees? |rs\.? |₹)?(\d+)(?: for)? (.*)`), build: expenseParams},
	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)spent (?:rupees? |rs\.? |₹)?(\d+)(?: on)? (.*)`), build: expenseParams},
	{kind: KindAddTransaction, re: regexp.MustCompile(`(?i)paid (?:rupees? |rs\.? |₹)?(\d+)(?: for)? (.*)`), build: expenseParams},

	{kind: KindQueryData, re: regexp.MustCompile(`(?i)show (today'?s?|this week'?s?|this month'?s?) (sales|revenue|expenses|profit)`), build: func(m []string) *Intent {
		return &Intent{Query: &QueryParams{Period: normalizePeriod(m[1]), Metric: m[2]}}
	}},
	{kind: KindQueryData, re: regexp.MustCompile(`(?i)what is (?:my|the) (total revenue|total expense|profit)`), build: func(m []string) *Intent {
		return &Intent{Query: &QueryParams{Period: "all", Metric: m[1]}}
	}},
	{kind: KindQueryData, re: regexp.MustCompile(`(?i)how much did i (earn|spend|make) (today|this week|this month)`), build: func(m []string) *Intent {
		return &Intent{Query: &QueryParams{Period: m[2], Metric: verbMetric[m[1]]}}
	}},

	{kind: KindCheckStock, re: regexp.MustCompile(`(?i)check stock (?:for |of )?(.*)`), build: stockParams},
	{kind: KindCheckStock, re: regexp.MustCompile(`(?i)how many (.*) (?:do i have|in stock)`), build: stockParams},
	{kind: KindCheckStock, re: regexp.MustCompile(`(?i)stock level (?:of |for )?(.*)`), build: stockParams},

	{kind: KindShowAnalytics, contains: [][]string{{"show"}, {"dashboard", "analytics"}}, build: func([]string) *Intent {
		return &Intent{}
	}},
}

var verbMetric = map[string]string{
	"earn":  "revenue",
	"spend": "expenses",
	"make":  "profit",
}

// keywordGrammar is the coarser containment grammar used for Hindi and
// Marathi. Income keywords are checked before expense keywords before the
// show keywords, so a transcript carrying both income and expense words is
// taken as income.
type keywordGrammar struct {
	income  []string
	expense []string
	show    []string
}

var hindiGrammar = keywordGrammar{
	income:  []string{"आय", "बिक्री", "मिला"},
	expense: []string{"खर्च", "दिया", "पेमेंट"},
	show:    []string{"दिखाओ", "बताओ"},
}

var marathiGrammar = keywordGrammar{
	income:  []string{"उत्पन्न", "विक्री", "मिळाला"},
	expense: []string{"खर्च", "दिला", "पेमेंट"},
	show:    []string{"दाखवा", "सांग"},
}

var digitRun = regexp.MustCompile(`\d+`)

// Parse converts a transcript into an Intent. A transcript that matches no
// rule returns nil; that is the expected outcome for unrecognized speech,
// not an error.
func Parse(transcript string, lang Language) *Intent {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return nil
	}
	switch lang {
	case Hindi:
		return parseKeywords(text, hindiGrammar, Hindi)
	case Marathi:
		return parseKeywords(text, marathiGrammar, Marathi)
	default:
		return parseEnglish(text)
	}
}

func parseEnglish(text string) *Intent {
	for _, r := range englishRules {
		var intent *Intent
		switch {
		case r.re != nil:
			m := r.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			intent = r.build(m)
		default:
			if !containsAll(text, r.contains) {
				continue
			}
			intent = r.build(nil)
		}
		if intent == nil {
			continue
		}
		intent.Command = text
		intent.Kind = r.kind
		intent.Language = English
		return intent
	}
	return nil
}

func parseKeywords(text string, g keywordGrammar, lang Language) *Intent {
	txType := ""
	switch {
	case containsAny(text, g.income):
		txType = "income"
	case containsAny(text, g.expense):
		txType = "expense"
	case containsAny(text, g.show):
		return &Intent{Command: text, Kind: KindShowAnalytics, Language: lang}
	default:
		return nil
	}

	// The whole transcript is reused as the description; the amount is the
	// first run of digits anywhere in it. No digits means no transaction.
	digits := digitRun.FindString(text)
	if digits == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &Intent{
		Command:  text,
		Kind:     KindAddTransaction,
		Language: lang,
		Transaction: &TransactionParams{
			Type:        txType,
			Amount:      amount,
			Description: text,
		},
	}
}

func incomeParams(m []string) *Intent { return transactionParams("income", m) }

func expenseParams(m []string) *Intent { return transactionParams("expense", m) }

func transactionParams(txType string, m []string) *Intent {
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &Intent{Transaction: &TransactionParams{
		Type:        txType,
		Amount:      amount,
		Description: strings.TrimSpace(m[2]),
	}}
}

func stockParams(m []string) *Intent {
	return &Intent{Stock: &StockParams{Product: strings.TrimSpace(m[1])}}
}

// normalizePeriod strips the possessive from spoken periods:
// "today's" -> "today", "this week's" -> "this week".
func normalizePeriod(p string) string {
	p = strings.TrimSuffix(p, "'s")
	p = strings.TrimSuffix(p, "'")
	p = strings.TrimSuffix(p, "s")
	return p
}

func containsAny(text string, kws []string) bool {
	for _, k := range kws {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func containsAll(text string, groups [][]string) bool {
	for _, g := range groups {
		if !containsAny(text, g) {
			return false
		}
	}
	return true
}
