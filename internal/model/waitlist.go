package model

import "time"

// WaitlistEntry is a single signup collected by the public waitlist form.
// Entries are read-only from the dashboard's perspective.
type WaitlistEntry struct {
	ID                      string                  `json:"id" db:"id"`
	Email                   string                  `json:"email" db:"email"`
	Tier                    int                     `json:"tier" db:"tier"`
	CurrentApp              *CurrentApp             `json:"currentApp" db:"current_app"`
	CurrentAppOther         *string                 `json:"currentAppOther" db:"current_app_other"`
	SendToCountry           *SendToCountry          `json:"sendToCountry" db:"send_to_country"`
	SendToCountryOther      *string                 `json:"sendToCountryOther" db:"send_to_country_other"`
	Frequency               *Frequency              `json:"frequency" db:"frequency"`
	BiggestFrustration      *BiggestFrustration     `json:"biggestFrustration" db:"biggest_frustration"`
	BiggestFrustrationOther *string                 `json:"biggestFrustrationOther" db:"biggest_frustration_other"`
	OneThingToChange        *string                 `json:"oneThingToChange" db:"one_thing_to_change"`
	InvestingStatus         *InvestingStatus        `json:"investingStatus" db:"investing_status"`
	DesiredFeature          *DesiredFeature         `json:"desiredFeature" db:"desired_feature"`
	DesiredFeatureOther     *string                 `json:"desiredFeatureOther" db:"desired_feature_other"`
	PerfectAppDesign        *string                 `json:"perfectAppDesign" db:"perfect_app_design"`
	ResearchFollowUp        *ResearchFollowUp       `json:"researchFollowUp" db:"research_follow_up"`
	PreferredContactMethod  *PreferredContactMethod `json:"preferredContactMethod" db:"preferred_contact_method"`
	WhatsappNumber          *string                 `json:"whatsappNumber" db:"whatsapp_number"`
	InviteCount             int                     `json:"inviteCount" db:"invite_count"`
	EmailSent               bool                    `json:"emailSent" db:"email_sent"`
	CreatedAt               time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time               `json:"updatedAt" db:"updated_at"`
}

// OtherSentinel is the categorical value that makes the paired free-text
// "other" field meaningful.
const OtherSentinel = "Other"

// CurrentApp is the remittance app a signup uses today.
type CurrentApp string

const (
	CurrentAppWise                  CurrentApp = "Wise"
	CurrentAppLemFi                 CurrentApp = "LemFi"
	CurrentAppWorldRemit            CurrentApp = "WorldRemit"
	CurrentAppRemitly               CurrentApp = "Remitly"
	CurrentAppWesternUnionMoneyGram CurrentApp = "WesternUnionMoneyGram"
	CurrentAppBankTransfer          CurrentApp = "BankTransfer"
	CurrentAppOther                 CurrentApp = "Other"
)

// SendToCountry is the destination country of a signup's transfers.
type SendToCountry string

const (
	SendToCountryNigeria SendToCountry = "Nigeria"
	SendToCountryGhana   SendToCountry = "Ghana"
	SendToCountryKenya   SendToCountry = "Kenya"
	SendToCountryJamaica SendToCountry = "Jamaica"
	SendToCountryOther   SendToCountry = "Other"
)

// Frequency is how often a signup sends money.
type Frequency string

const (
	FrequencyEveryWeek     Frequency = "EveryWeek"
	FrequencyEvery2Weeks   Frequency = "Every2Weeks"
	FrequencyEveryMonth    Frequency = "EveryMonth"
	FrequencyFewTimesAYear Frequency = "FewTimesAYear"
	FrequencyItDepends     Frequency = "ItDepends"
)

// BiggestFrustration is the main pain point a signup reported.
type BiggestFrustration string

const (
	FrustrationHighFees                 BiggestFrustration = "HighFees"
	FrustrationBadExchangeRates         BiggestFrustration = "BadExchangeRates"
	FrustrationSlowTransfersDelays      BiggestFrustration = "SlowTransfersDelays"
	FrustrationTooManyAppsAndSteps      BiggestFrustration = "TooManyAppsAndSteps"
	FrustrationLackOfTrustHiddenCharges BiggestFrustration = "LackOfTrustHiddenCharges"
	FrustrationOther                    BiggestFrustration = "Other"
)

// InvestingStatus describes a signup's investing habits.
type InvestingStatus string

const (
	InvestingAlreadyRegularly      InvestingStatus = "AlreadyInvestingRegularly"
	InvestingStartedNotConsistent  InvestingStatus = "StartedLittleNotConsistent"
	InvestingWantToStartDontKnow   InvestingStatus = "WantToStartDontKnowWhere"
	InvestingNotInterestedRightNow InvestingStatus = "NotInterestedRightNow"
)

// DesiredFeature is the feature a signup wants most.
type DesiredFeature string

const (
	FeatureVeryLowOrZeroFees            DesiredFeature = "VeryLowOrZeroFees"
	FeatureSendAndInvestInOneTap        DesiredFeature = "SendAndInvestInOneTap"
	FeatureAIGuidanceOnInvesting        DesiredFeature = "AIGuidanceOnInvesting"
	FeatureClearTrackingOfSendAndInvest DesiredFeature = "ClearTrackingOfSendAndInvest"
	FeatureLearningContentAboutMoney    DesiredFeature = "LearningContentAboutMoney"
	FeatureOther                        DesiredFeature = "Other"
)

// ResearchFollowUp is whether a signup agreed to be contacted for research.
type ResearchFollowUp string

const (
	ResearchYesHappyToHelp       ResearchFollowUp = "YesHappyToHelp"
	ResearchMaybeSendMoreDetails ResearchFollowUp = "MaybeSendMoreDetails"
	ResearchNoNotRightNow        ResearchFollowUp = "NoNotRightNow"
)

// PreferredContactMethod is how a signup wants to be reached.
type PreferredContactMethod string

const (
	ContactEmail    PreferredContactMethod = "Email"
	ContactWhatsApp PreferredContactMethod = "WhatsApp"
)

var (
	currentApps = []CurrentApp{
		CurrentAppWise, CurrentAppLemFi, CurrentAppWorldRemit, CurrentAppRemitly,
		CurrentAppWesternUnionMoneyGram, CurrentAppBankTransfer, CurrentAppOther,
	}
	sendToCountries = []SendToCountry{
		SendToCountryNigeria, SendToCountryGhana, SendToCountryKenya,
		SendToCountryJamaica, SendToCountryOther,
	}
	frequencies = []Frequency{
		FrequencyEveryWeek, FrequencyEvery2Weeks, FrequencyEveryMonth,
		FrequencyFewTimesAYear, FrequencyItDepends,
	}
	frustrations = []BiggestFrustration{
		FrustrationHighFees, FrustrationBadExchangeRates, FrustrationSlowTransfersDelays,
		FrustrationTooManyAppsAndSteps, FrustrationLackOfTrustHiddenCharges, FrustrationOther,
	}
	investingStatuses = []InvestingStatus{
		InvestingAlreadyRegularly, InvestingStartedNotConsistent,
		InvestingWantToStartDontKnow, InvestingNotInterestedRightNow,
	}
	desiredFeatures = []DesiredFeature{
		FeatureVeryLowOrZeroFees, FeatureSendAndInvestInOneTap, FeatureAIGuidanceOnInvesting,
		FeatureClearTrackingOfSendAndInvest, FeatureLearningContentAboutMoney, FeatureOther,
	}
	researchFollowUps = []ResearchFollowUp{
		ResearchYesHappyToHelp, ResearchMaybeSendMoreDetails, ResearchNoNotRightNow,
	}
	contactMethods = []PreferredContactMethod{ContactEmail, ContactWhatsApp}
)

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Valid reports whether v is a member of the closed set.
func (v CurrentApp) Valid() bool { return oneOf(v, currentApps) }

// Valid reports whether v is a member of the closed set.
func (v SendToCountry) Valid() bool { return oneOf(v, sendToCountries) }

// Valid reports whether v is a member of the closed set.
func (v Frequency) Valid() bool { return oneOf(v, frequencies) }

// Valid reports whether v is a member of the closed set.
func (v BiggestFrustration) Valid() bool { return oneOf(v, frustrations) }

// Valid reports whether v is a member of the closed set.
func (v InvestingStatus) Valid() bool { return oneOf(v, investingStatuses) }

// Valid reports whether v is a member of the closed set.
func (v DesiredFeature) Valid() bool { return oneOf(v, desiredFeatures) }

// Valid reports whether v is a member of the closed set.
func (v ResearchFollowUp) Valid() bool { return oneOf(v, researchFollowUps) }

// Valid reports whether v is a member of the closed set.
func (v PreferredContactMethod) Valid() bool { return oneOf(v, contactMethods) }

// CurrentApps returns every CurrentApp value in display order.
func CurrentApps() []CurrentApp { return append([]CurrentApp(nil), currentApps...) }

// SendToCountries returns every SendToCountry value in display order.
func SendToCountries() []SendToCountry {
	return append([]SendToCountry(nil), sendToCountries...)
}

// ResearchFollowUps returns every ResearchFollowUp value in display order.
func ResearchFollowUps() []ResearchFollowUp {
	return append([]ResearchFollowUp(nil), researchFollowUps...)
}

// Frequencies returns every Frequency value in display order.
func Frequencies() []Frequency { return append([]Frequency(nil), frequencies...) }

// BiggestFrustrations returns every BiggestFrustration value in display order.
func BiggestFrustrations() []BiggestFrustration {
	return append([]BiggestFrustration(nil), frustrations...)
}

// InvestingStatuses returns every InvestingStatus value in display order.
func InvestingStatuses() []InvestingStatus {
	return append([]InvestingStatus(nil), investingStatuses...)
}

// DesiredFeatures returns every DesiredFeature value in display order.
func DesiredFeatures() []DesiredFeature {
	return append([]DesiredFeature(nil), desiredFeatures...)
}

// PreferredContactMethods returns every PreferredContactMethod value in
// display order.
func PreferredContactMethods() []PreferredContactMethod {
	return append([]PreferredContactMethod(nil), contactMethods...)
}

// Validate checks the categorical invariants of an entry: tier is positive,
// every categorical field is a member of its set, and "other" free text only
// accompanies the Other sentinel.
func (e *WaitlistEntry) Validate() error {
	if e.Email == "" {
		return &FieldError{Field: "email", Reason: "is required"}
	}
	if e.Tier < 1 {
		return &FieldError{Field: "tier", Reason: "must be a positive integer"}
	}
	checks := []struct {
		field string
		set   bool
		valid bool
	}{
		{"currentApp", e.CurrentApp != nil, e.CurrentApp != nil && e.CurrentApp.Valid()},
		{"sendToCountry", e.SendToCountry != nil, e.SendToCountry != nil && e.SendToCountry.Valid()},
		{"frequency", e.Frequency != nil, e.Frequency != nil && e.Frequency.Valid()},
		{"biggestFrustration", e.BiggestFrustration != nil, e.BiggestFrustration != nil && e.BiggestFrustration.Valid()},
		{"investingStatus", e.InvestingStatus != nil, e.InvestingStatus != nil && e.InvestingStatus.Valid()},
		{"desiredFeature", e.DesiredFeature != nil, e.DesiredFeature != nil && e.DesiredFeature.Valid()},
		{"researchFollowUp", e.ResearchFollowUp != nil, e.ResearchFollowUp != nil && e.ResearchFollowUp.Valid()},
		{"preferredContactMethod", e.PreferredContactMethod != nil, e.PreferredContactMethod != nil && e.PreferredContactMethod.Valid()},
	}
	for _, c := range checks {
		if c.set && !c.valid {
			return &FieldError{Field: c.field, Reason: "is not an allowed value"}
		}
	}

	others := []struct {
		field    string
		text     *string
		category string
	}{
		{"currentAppOther", e.CurrentAppOther, deref(e.CurrentApp)},
		{"sendToCountryOther", e.SendToCountryOther, deref(e.SendToCountry)},
		{"biggestFrustrationOther", e.BiggestFrustrationOther, deref(e.BiggestFrustration)},
		{"desiredFeatureOther", e.DesiredFeatureOther, deref(e.DesiredFeature)},
	}
	for _, o := range others {
		if o.text != nil && *o.text != "" && o.category != OtherSentinel {
			return &FieldError{Field: o.field, Reason: "requires the Other option"}
		}
	}
	return nil
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

// FieldError reports an invalid field on a model value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}
