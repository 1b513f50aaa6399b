package bank

import (
	"tonetracker/internal/dateparse"
	"tonetracker/internal/roster"
)

const scoreModel = "claude-sonnet-4-5"

// Fed returns the FOMC instance: board + NY Fed feeds and the remaining
// regional bank listing pages.
func Fed() Profile {
	return Profile{
		ID:         "fed",
		Name:       "Federal Reserve",
		GeneralKey: "fed_general",

		RateLabel:    "3.50-3.75%",
		RateMid:      3.625,
		NeutralRate:  3.0,
		LastVote:     "10-2 cut",
		LastDecision: "2025-12-10",
		CPILatest:    "2.8%",

		Model: scoreModel,
		PolicyKeywords: []string{
			"inflation", "labor market", "employment", "rate", "restrictive", "neutral",
			"mandate", "cut", "hike", "hold", "target", "percent", "monetary policy",
			"price stability", "economy", "growth", "tariff", "uncertainty",
			"disinflation", "tightening", "easing", "fomc", "federal funds",
		},
		TextSelectors: []string{
			"div#article", "div.col-xs-12.col-sm-8.col-md-8",
			"div.ts-article-content", "div.speech-content", "div#content-detail",
			"div.entry-content", "article", "main", "div#content",
		},
		DateLayouts: dateparse.USLayouts,
		Roster:      fedRoster(),

		Feeds: []FeedSource{
			{ID: "fed_board", URL: "https://www.federalreserve.gov/feeds/speeches.xml"},
			{ID: "ny_fed", URL: "https://www.newyorkfed.org/rss/feeds/speeches"},
		},
		Listings: []ListingSource{
			{ID: "boston", URL: "https://www.bostonfed.org/news-and-events/speeches.aspx",
				Base:          "https://www.bostonfed.org",
				ItemSelectors: []string{"li.row", "div.speeches-list-item", "div[class*=speech]", "li[class*=item]"},
				DateSelectors: []string{"span[class*=date]", "time", "p.date"}},
			{ID: "philadelphia", URL: "https://www.philadelphiafed.org/search-results?searchtype=speeches",
				Base:          "https://www.philadelphiafed.org",
				ItemSelectors: []string{"li[class*=result]", "div[class*=result]", "div[class*=item]", "article"},
				DateSelectors: []string{"time", "span[class*=date]", ".date"}},
			{ID: "cleveland", URL: "https://www.clevelandfed.org/collections/speeches",
				Base:          "https://www.clevelandfed.org",
				ItemSelectors: []string{"div[class*=card]", "article", "li[class*=item]"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "richmond", URL: "https://www.richmondfed.org/press_room/speeches",
				Base:          "https://www.richmondfed.org",
				ItemSelectors: []string{"li.result", "div[class*=result]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "atlanta", URL: "https://www.atlantafed.org/news-and-events/speeches",
				Base:          "https://www.atlantafed.org",
				ItemSelectors: []string{"div[class*=teaser]", "li[class*=item]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "chicago", URL: "https://www.chicagofed.org/utilities/about-us/office-of-the-president/office-of-the-president-speaking",
				Base:          "https://www.chicagofed.org",
				ItemSelectors: []string{"li[class*=item]", "div[class*=listing]", "div[class*=result]", "article"},
				DateSelectors: []string{"time", "span[class*=date]", ".date"}},
			{ID: "stlouis", URL: "https://www.stlouisfed.org/from-the-president/remarks",
				Base:          "https://www.stlouisfed.org",
				ItemSelectors: []string{"li[class*=item]", "div[class*=item]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "minneapolis", URL: "https://www.minneapolisfed.org/speeches",
				Base:          "https://www.minneapolisfed.org",
				ItemSelectors: []string{"div[class*=card]", "li[class*=item]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "kansascity", URL: "https://www.kansascityfed.org/senior-leadership/president/",
				Base:          "https://www.kansascityfed.org",
				ItemSelectors: []string{"li[class*=item]", "div[class*=result]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "dallas", URL: "https://www.dallasfed.org/news/speeches/logan",
				Base:          "https://www.dallasfed.org",
				ItemSelectors: []string{"div[class*=item]", "li[class*=item]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
			{ID: "sanfrancisco", URL: "https://www.frbsf.org/news-and-media/speeches/",
				Base:          "https://www.frbsf.org",
				ItemSelectors: []string{"li[class*=item]", "div[class*=post]", "article"},
				DateSelectors: []string{"time", "span[class*=date]"}},
		},

		// FOMC minutes attribute no individual rationales, so no Meetings
		// are configured here; the minutes collector is BoE-only for now.
		ScoringPrompt: fedPrompt,
	}
}

// BoE returns the MPC instance: speeches RSS + listing fallback, minutes vote
// rationales and Treasury Select Committee testimony.
func BoE() Profile {
	return Profile{
		ID:         "boe",
		Name:       "Bank of England",
		GeneralKey: "mpc_general",

		RateLabel:    "3.75%",
		RateMid:      3.75,
		NeutralRate:  3.25, // market-implied, the MPC publishes no explicit neutral
		LastVote:     "5-4 hold",
		LastDecision: "2026-02-05",
		CPILatest:    "3.4%",

		Model: scoreModel,
		PolicyKeywords: []string{
			"inflation", "labour market", "labor market", "employment",
			"bank rate", "interest rate", "restrictive", "neutral",
			"mandate", "cut", "hike", "hold", "target", "percent",
			"monetary policy", "price stability", "economy", "growth",
			"disinflation", "tightening", "easing", "mpc", "persistence",
			"services inflation", "wage growth", "pay growth", "slack",
			"output gap", "gdp", "cpi", "pce", "demand", "supply",
			"uncertainty", "tariff", "fiscal", "budget", "sterling",
			"quantitative tightening", "gilt", "sonia",
		},
		TextSelectors: []string{
			"div.page-content", "div[class*=article]", "div[class*=speech]",
			"div#content", "article", "main", "div.col-sm-8",
		},
		SkipSpeakers: []string{
			"afua kyei", "victoria saporta", "sam woods", "james talbot",
			"rebecca jackson", "sasha mills", "james benford", "laura wallis",
		},
		DateLayouts: dateparse.UKLayouts,
		Roster:      boeRoster(),

		Feeds: []FeedSource{
			{ID: "boe_speech", URL: "https://www.bankofengland.co.uk/rss/speeches"},
		},
		Listings: []ListingSource{
			{ID: "boe_speech_list", URL: "https://www.bankofengland.co.uk/news/speeches",
				Base: "https://www.bankofengland.co.uk"},
		},

		Meetings: []Meeting{
			{Date: "2024-08-01", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2024/august-2024"},
			{Date: "2024-09-19", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2024/september-2024"},
			{Date: "2024-11-07", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2024/november-2024"},
			{Date: "2024-12-19", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2024/december-2024"},
			{Date: "2025-02-06", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/february-2025"},
			{Date: "2025-03-20", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/march-2025"},
			{Date: "2025-05-08", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/may-2025"},
			{Date: "2025-06-19", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/june-2025"},
			{Date: "2025-08-07", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/august-2025"},
			{Date: "2025-09-18", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/september-2025"},
			{Date: "2025-11-06", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/november-2025"},
			{Date: "2025-12-18", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2025/december-2025"},
			{Date: "2026-02-05", URL: "https://www.bankofengland.co.uk/monetary-policy-summary-and-minutes/2026/february-2026"},
		},
		MinutesSource: "mpc_minutes",
		MinutesVenue:  "MPC Meeting",
		MinutesLabel:  "MPC Minutes",

		Testimony: &TestimonySource{
			ID:          "tsc_testimony",
			URL:         "https://committees.parliament.uk/work/68/bank-of-england-monetary-policy-reports/",
			Base:        "https://committees.parliament.uk",
			LinkToken:   "oral-evidence",
			Venue:       "Treasury Select Committee",
			TitlePrefix: "TSC Testimony — ",
		},

		ScoringPrompt: boePrompt,
	}
}

func fedRoster() roster.Roster {
	return roster.Roster{Members: []roster.Member{
		{ID: "powell", FullName: "Jerome H. Powell", Aliases: []string{"powell", "jerome powell", "jerome h. powell", "chair powell"}},
		{ID: "jefferson", FullName: "Philip N. Jefferson", Aliases: []string{"jefferson", "philip jefferson", "philip n. jefferson", "vice chair jefferson"}},
		{ID: "waller", FullName: "Christopher J. Waller", Aliases: []string{"waller", "christopher waller", "christopher j. waller", "governor waller"}},
		{ID: "bowman", FullName: "Michelle W. Bowman", Aliases: []string{"bowman", "michelle bowman", "michelle w. bowman", "governor bowman"}},
		{ID: "kugler", FullName: "Adriana D. Kugler", Aliases: []string{"kugler", "adriana kugler", "adriana d. kugler", "governor kugler"}},
		{ID: "cook", FullName: "Lisa D. Cook", Aliases: []string{"cook", "lisa cook", "lisa d. cook", "governor cook"}},
		{ID: "barr", FullName: "Michael S. Barr", Aliases: []string{"barr", "michael barr", "michael s. barr", "vice chair barr"}},
		{ID: "williams", FullName: "John C. Williams", Aliases: []string{"williams", "john williams", "john c. williams", "president williams"}},
		{ID: "goolsbee", FullName: "Austan Goolsbee", Aliases: []string{"goolsbee", "austan goolsbee", "president goolsbee"}},
		{ID: "schmid", FullName: "Jeffrey Schmid", Aliases: []string{"schmid", "jeff schmid", "jeffrey schmid", "president schmid"}},
		{ID: "hammack", FullName: "Beth Hammack", Aliases: []string{"hammack", "beth hammack", "bethany hammack", "president hammack"}},
		{ID: "logan", FullName: "Lorie K. Logan", Aliases: []string{"logan", "lorie logan", "lorie k. logan", "president logan"}},
		{ID: "bostic", FullName: "Raphael W. Bostic", Aliases: []string{"bostic", "raphael bostic", "raphael w. bostic", "president bostic"}},
		{ID: "collins", FullName: "Susan M. Collins", Aliases: []string{"collins", "susan collins", "susan m. collins", "president collins"}},
		{ID: "harker", FullName: "Patrick T. Harker", Aliases: []string{"harker", "patrick harker", "patrick t. harker", "president harker"}},
		{ID: "kashkari", FullName: "Neel Kashkari", Aliases: []string{"kashkari", "neel kashkari", "president kashkari"}},
		{ID: "daly", FullName: "Mary C. Daly", Aliases: []string{"daly", "mary daly", "mary c. daly", "president daly"}},
		{ID: "barkin", FullName: "Thomas I. Barkin", Aliases: []string{"barkin", "tom barkin", "thomas barkin", "thomas i. barkin", "president barkin"}},
		{ID: "musalem", FullName: "Alberto G. Musalem", Aliases: []string{"musalem", "alberto musalem", "alberto g. musalem", "president musalem"}},
		{ID: "paulson", FullName: "Patrick Paulson", Aliases: []string{"paulson", "patrick paulson", "president paulson"}},
		{ID: "miran", FullName: "Stephen Miran", Aliases: []string{"stephen miran"}},
	}}
}

func boeRoster() roster.Roster {
	return roster.Roster{
		// All 9 MPC members vote at every meeting, unlike the FOMC's 19/12
		// structure.
		Members: []roster.Member{
			{ID: "bailey", FullName: "Andrew Bailey", Aliases: []string{"andrew bailey", "bailey", "governor bailey", "the governor"}},
			{ID: "lombardelli", FullName: "Clare Lombardelli", Aliases: []string{"clare lombardelli", "lombardelli", "deputy governor for monetary policy"}},
			{ID: "breeden", FullName: "Sarah Breeden", Aliases: []string{"sarah breeden", "breeden", "deputy governor for financial stability"}},
			{ID: "ramsden", FullName: "Dave Ramsden", Aliases: []string{"dave ramsden", "ramsden", "sir dave ramsden", "deputy governor for markets and banking", "deputy governor, markets and banking"}},
			{ID: "pill", FullName: "Huw Pill", Aliases: []string{"huw pill", "pill", "chief economist", "executive director, monetary analysis"}},
			{ID: "mann", FullName: "Catherine L. Mann", Aliases: []string{"catherine mann", "catherine l mann", "catherine l. mann", "dr catherine mann", "dr mann", "mann"}},
			{ID: "dhingra", FullName: "Swati Dhingra", Aliases: []string{"swati dhingra", "dhingra", "dr swati dhingra", "dr dhingra"}},
			{ID: "greene", FullName: "Megan Greene", Aliases: []string{"megan greene", "greene"}},
			{ID: "taylor", FullName: "Alan Taylor", Aliases: []string{"alan taylor", "taylor", "professor alan taylor", "prof taylor", "professor taylor"}},
		},
		// Former members still appear in older minutes.
		Former: []roster.Member{
			{ID: "broadbent", FullName: "Ben Broadbent", Aliases: []string{"ben broadbent", "broadbent", "deputy governor broadbent"}},
			{ID: "haskel", FullName: "Jonathan Haskel", Aliases: []string{"jonathan haskel", "haskel", "professor haskel", "prof haskel"}},
		},
	}
}

const fedPrompt = `You are a quantitative Fed policy analyst. Score this FOMC speech on three components anchored to the current SEP framework.

NEUTRAL RATE FRAMEWORK:
- Estimated neutral rate: {{.NeutralRate}}% (SEP median)
- Current fed funds rate: {{.RateLabel}} (midpoint {{.RateMid}}%)
- Policy is {{.GapBP}}bps from neutral
- Speaker: {{.Speaker}}
- Last FOMC vote: {{.LastVote}} on {{.LastDecision}}

SCORE THREE COMPONENTS (-100 to +100, positive = hawkish):

STANCE_SCORE — How does the speaker characterize policy restrictiveness?
  "Significantly/substantially restrictive" → -60 to -80
  "Moderately restrictive" → -30 to -50
  "Modestly restrictive" → -10 to -25
  "Appropriate / near neutral" → 0 to +20
  "Not restrictive / need to hold or hike" → +30 to +70

BALANCE_SCORE — Primary risk emphasis?
  Inflation dominates → +40 to +75
  More inflation than labor → +15 to +40
  Balanced → -10 to +15
  More labor/growth concern → -15 to -40
  Employment risk dominates → -40 to -75

DIRECTION_SCORE — Rate path signal?
  Explicit hold or hike preference → +40 to +75
  Patience, lean hold → +15 to +40
  Data dependent, balanced → -10 to +15
  Lean toward gradual cuts → -15 to -40
  Explicit cut preference → -40 to -75

{{.VoteContext}}

COMPOSITE = round(0.30 * stance + 0.35 * balance + 0.35 * direction)
Composite range: -50 to +50. Scores beyond +/-35 are rare extremes.

Extract 3-4 key signal phrases, label each hawk/dove/neutral.
One sentence rationale referencing the neutral rate framework.

Return ONLY valid JSON:
{"stance":int,"balance":int,"direction":int,"composite":int,"reason":"string","keywords":[{"word":"string","type":"hawk|dove|neutral"}]}

SPEECH TEXT:
{{.Text}}`

const boePrompt = `You are a quantitative Bank of England policy analyst. Score this MPC speech/testimony on three components anchored to the current policy framework.

NEUTRAL RATE FRAMEWORK:
- Estimated neutral rate: {{.NeutralRate}}% (market-implied, MPC does not publish explicit)
- Current Bank Rate: {{.RateLabel}} (midpoint {{.RateMid}}%)
- Policy is {{.GapBP}}bps from neutral
- Speaker: {{.Speaker}}
- Last MPC vote: {{.LastVote}} on {{.LastDecision}}
- UK CPI: {{.CPILatest}} (target: 2%)

SCORE THREE COMPONENTS (-100 to +100, positive = hawkish):

STANCE_SCORE — How does the speaker characterize policy restrictiveness?
  "Significantly/substantially restrictive, need to ease" → -60 to -80
  "Too restrictive, further cuts warranted now" → -30 to -50
  "Modestly restrictive, gradual adjustment" → -10 to -25
  "Appropriate / near right level" → 0 to +20
  "Need to retain restrictiveness / not cut further" → +30 to +70

BALANCE_SCORE — Primary risk emphasis?
  Inflation persistence dominates → +40 to +75
  Inflation risks > demand/growth risks → +15 to +40
  Balanced / two-sided → -10 to +15
  Growth/employment concern > inflation → -15 to -40
  Demand weakness / slack dominates → -40 to -75

DIRECTION_SCORE — Rate path signal?
  Explicit hold or "no need to cut further" → +40 to +75
  Patience, "gradual and careful" → +15 to +40
  Data dependent, balanced → -10 to +15
  Lean toward further cuts → -15 to -40
  Explicit cut preference / multiple cuts needed → -40 to -75

BOE-SPECIFIC CALIBRATION:
- "gradual and careful" = hawkish (Pill's signature phrase)
- "persistence" / "second-round effects" = hawkish
- "services inflation" / "wage growth above target" = hawkish
- "insurance" / "precautionary" = dovish
- "loosening labour market" / "slack building" = dovish
- "demand weakness" / "stagnation" = dovish
- "balance of risks" = neutral unless clearly weighted
- "sufficient evidence" / "not yet warranted" = lean hawkish

{{.VoteContext}}

COMPOSITE = round(0.30 * stance + 0.35 * balance + 0.35 * direction)
Composite range: -50 to +50. Scores beyond +/-35 are rare extremes.

Extract 3-4 key signal phrases, label each hawk/dove/neutral.
One sentence rationale referencing the neutral rate framework.

Return ONLY valid JSON:
{"stance":int,"balance":int,"direction":int,"composite":int,"reason":"string","keywords":[{"word":"string","type":"hawk|dove|neutral"}]}

TEXT:
{{.Text}}`
