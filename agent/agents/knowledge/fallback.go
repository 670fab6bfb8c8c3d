package knowledge

import "strings"

// cannedAnswers covers the common product questions so a model quota outage
// still yields a useful reply instead of an error. Order matters: the first
// topic contained in the query wins.
var cannedAnswers = []struct {
	topic string
	text  string
}{
	{
		topic: "comprehensive",
		text: `Comprehensive auto insurance covers damage to your vehicle from non-collision events such as:
- Theft or vandalism
- Fire or explosion
- Natural disasters (floods, hurricanes, hail)
- Falling objects
- Animal collisions (hitting a deer)

It does NOT cover collision damage or liability.`,
	},
	{
		topic: "collision",
		text: `Collision insurance covers damage to your vehicle from collisions with:
- Other vehicles
- Fixed objects (trees, poles, buildings)
- Rollovers

It covers repair costs regardless of fault.`,
	},
	{
		topic: "life insurance",
		text: `Life insurance provides financial protection to your beneficiaries when you pass away. Types include:
- Term Life: Coverage for a specific period (10, 20, 30 years)
- Whole Life: Permanent coverage with cash value component
- Universal Life: Flexible premiums and death benefits`,
	},
	{
		topic: "premium",
		text: `An insurance premium is the amount you pay (usually monthly or annually) to keep your insurance policy active. Factors affecting premiums:
- Coverage amount
- Deductible chosen
- Risk factors (age, driving record, health)
- Location`,
	},
	{
		topic: "deductible",
		text: `A deductible is the amount you pay out-of-pocket before insurance coverage kicks in. Examples:
- $500 deductible: You pay first $500, insurance pays the rest
- Higher deductible = Lower premium
- Lower deductible = Higher premium`,
	},
	{
		topic: "liability",
		text: `Liability insurance covers damages you cause to others:
- Bodily injury liability: Medical costs for injured parties
- Property damage liability: Repair costs for damaged property
- Legal defense costs if sued

Required by law in most states.`,
	},
	{
		topic: "health insurance",
		text: `Health insurance helps pay for medical expenses including:
- Doctor visits
- Hospital stays
- Prescription medications
- Preventive care
- Emergency services

Types: HMO, PPO, EPO, POS`,
	},
	{
		topic: "auto insurance",
		text: `Auto insurance protects you financially in vehicle-related incidents. Main types:
- Liability: Covers damage you cause to others (required)
- Collision: Covers your vehicle damage in accidents
- Comprehensive: Covers non-collision damage
- Uninsured Motorist: Protects you from uninsured drivers`,
	},
}

const cannedPrefix = "*Using cached knowledge (knowledge base temporarily unavailable)*\n\n"

const genericFallback = `The knowledge base is temporarily unavailable due to API quota limits.

I can provide basic information about:
- Auto insurance (comprehensive, collision, liability)
- Life insurance (term, whole, universal)
- Health insurance
- Common terms (premium, deductible, coverage)

Please ask about one of these topics, or try again later for more detailed information.`

// fallbackAnswer returns a canned answer matched by topic substring, or a
// generic notice when no topic applies.
func fallbackAnswer(query string) string {
	q := strings.ToLower(query)
	for _, c := range cannedAnswers {
		if strings.Contains(q, c.topic) {
			return cannedPrefix + c.text
		}
	}
	return genericFallback
}
