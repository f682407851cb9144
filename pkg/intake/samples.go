package intake

// samples is the demo data inserted by Seed
var samples = []Submission{
	{
		Source:  "discord",
		Title:   "Dashboard loading slowly",
		Content: "The analytics dashboard takes forever to load. Sometimes it just shows a spinning loader for 30+ seconds. This is really frustrating when I need to check metrics quickly.",
	},
	{
		Source:  "github",
		Title:   "Feature Request: Dark Mode",
		Content: "Would love to have a dark mode option! I work late nights and the bright white UI is harsh on my eyes. This would be a great addition.",
	},
	{
		Source:  "twitter",
		Content: "Just discovered @YourProduct and I am blown away! The onboarding was seamless and I was up and running in minutes. Best tool I have used this year! 🚀",
	},
	{
		Source:  "email",
		Title:   "Urgent: API returning 500 errors",
		Content: "Our production integration is completely broken. The /users endpoint is returning 500 errors since this morning. We have customers unable to access their accounts. Please fix ASAP!",
	},
	{
		Source:  "discord",
		Title:   "Export to PDF?",
		Content: "Is there any way to export reports as PDF? I need to share them with stakeholders who don't have accounts. An export feature would be super helpful.",
	},
	{
		Source:  "github",
		Title:   "Bug: Search not finding exact matches",
		Content: `When I search for "project-alpha" it does not find exact matches, only partial ones. The search should prioritize exact string matches over fuzzy matching.`,
	},
}
