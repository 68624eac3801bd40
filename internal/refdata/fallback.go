package refdata

import "github.com/stoik/emailrisk/internal/domain"

// Compiled-in fallback data, used when no cache exists and the refresh
// source is unreachable. Small but representative; never fail closed on a
// transient source outage.

// freemail.tk is deliberately absent here: it is a free-provider-flavored
// domain on a high-risk ccTLD, not a disposable one — it should earn risk
// through tldRisk/keyboard-walk detection, not the disposable fast path.
var fallbackDisposableDomains = map[string]struct{}{
	"tempmail.com":      {},
	"mailinator.com":    {},
	"guerrillamail.com": {},
	"10minutemail.com":  {},
	"throwawaymail.com": {},
	"yopmail.com":       {},
	"trashmail.com":     {},
	"getnada.com":       {},
	"sharklasers.com":   {},
	"fakeinbox.com":     {},
}

var fallbackDisposablePatterns = []string{
	`temp.*mail`,
	`\d+minutemail`,
	`throwaway`,
	`trash.*mail`,
	`guerrilla.*mail`,
	`fake.*mail`,
	`disposable`,
	`spam.*mail`,
}

var fallbackFreeProviders = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"outlook.com":    {},
	"hotmail.com":    {},
	"aol.com":        {},
	"icloud.com":     {},
	"mail.com":       {},
	"gmx.com":        {},
	"protonmail.com": {},
	"live.com":       {},
}

var fallbackTLDRisk = map[string]domain.TLDProfile{
	"com":  {Category: domain.TLDStandard, RiskMultiplier: 0.3, Description: "generic commercial"},
	"org":  {Category: domain.TLDStandard, RiskMultiplier: 0.3, Description: "generic organization"},
	"net":  {Category: domain.TLDStandard, RiskMultiplier: 0.5, Description: "generic network"},
	"edu":  {Category: domain.TLDTrusted, RiskMultiplier: 0.2, Description: "education"},
	"gov":  {Category: domain.TLDTrusted, RiskMultiplier: 0.2, Description: "government"},
	"io":   {Category: domain.TLDStandard, RiskMultiplier: 0.6, Description: "tech-favored ccTLD"},
	"co":   {Category: domain.TLDStandard, RiskMultiplier: 0.7, Description: "commercial alternative"},
	"info": {Category: domain.TLDSuspicious, RiskMultiplier: 1.6, Description: "frequently abused"},
	"biz":  {Category: domain.TLDSuspicious, RiskMultiplier: 1.5, Description: "frequently abused"},
	"xyz":  {Category: domain.TLDSuspicious, RiskMultiplier: 1.8, Description: "cheap bulk registration"},
	"top":  {Category: domain.TLDHighRisk, RiskMultiplier: 2.4, Description: "cheap bulk registration, high abuse"},
	"tk":   {Category: domain.TLDHighRisk, RiskMultiplier: 3.0, Description: "free ccTLD, high abuse"},
	"ml":   {Category: domain.TLDHighRisk, RiskMultiplier: 3.0, Description: "free ccTLD, high abuse"},
	"ga":   {Category: domain.TLDHighRisk, RiskMultiplier: 2.8, Description: "free ccTLD, high abuse"},
	"cf":   {Category: domain.TLDHighRisk, RiskMultiplier: 2.8, Description: "free ccTLD, high abuse"},
}
