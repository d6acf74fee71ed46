package reminder

// Catalogue templates use {days} for the at-risk count rendered with its
// unit ("1 day", "5 days").

var normalTemplates = []string{
	"🌱 {days} streak! Keep it going, commit something today!",
	"🔥 {days} streak! Don't break the momentum!",
	"⭐ {days} and counting. You're on fire, keep it going!",
	"🎉 {days} in a row! This is becoming a habit!",
	"💎 {days} strong. Don't stop now!",
	"🚀 {days} of dedication. One small commit keeps it alive!",
	"⏰ Friendly reminder: keep your {days} streak alive!",
	"🌙 Commit before bed to carry your {days} streak into tomorrow.",
	"💚 Quick reminder: your {days} streak needs attention!",
	"☕ Grab a coffee and push something. {days} deserve a sequel!",
}

var normalFreshTemplates = []string{
	"💚 Start your GitHub streak today!",
	"🌱 Every streak starts with one commit. Make it today!",
	"✨ A fresh start: one push today begins a new streak.",
}

var strictTemplates = []string{
	"🔴 FINAL WARNING! Your {days} streak dies at midnight! COMMIT NOW",
	"⏰ TIME IS RUNNING OUT! {days} on the line! COMMIT NOW",
	"💀 LAST CHANCE! Commit NOW or lose {days}!",
	"🚨 Don't be lazy. {days} will vanish without a commit! COMMIT NOW",
	"🔥 {days} streak! One miss = back to ZERO! COMMIT NOW",
	"👑 {days} LEGEND! Protect it with a commit NOW!",
	"⚡ {days}! This is serious. Commit NOW!",
	"💣 Danger: your {days} streak can end TODAY! COMMIT NOW",
	"🦉 The owl is watching. {days} at risk. Commit NOW!",
	"💥 Don't throw away {days} of work. Push something NOW!",
}

var strictFreshTemplates = []string{
	"🦉 Your streak is DEAD. Get coding NOW or lose everything!",
	"💀 ZERO days. Pathetic. Open your editor and COMMIT NOW!",
	"🚨 No streak, no excuses. COMMIT NOW!",
}

// bucket is one headline tier; upper is exclusive, 0 means unbounded.
type bucket struct {
	upper  int
	normal string
	strict string
}

var headlineBuckets = []bucket{
	{upper: 5, normal: "🔥 {n} day streak! Don't break the momentum!", strict: "⚡ {n} day streak! One lazy day = GONE FOREVER! COMMIT NOW"},
	{upper: 10, normal: "⭐ {n} days! You're on fire, keep it going!", strict: "💪 {n} days! But I'm watching... Don't break it! COMMIT NOW"},
	{upper: 20, normal: "🎉 {n} days! This is becoming a habit!", strict: "🎯 {n} DAYS! Miss today and cry tomorrow! COMMIT NOW"},
	{upper: 30, normal: "💎 {n} days! You're a GitHub legend, don't stop!", strict: "👑 {n} DAYS LEGEND! One miss = back to ZERO! COMMIT NOW"},
	{upper: 50, normal: "🚀 {n} DAYS! Incredible dedication, keep going!", strict: "🚀 {n} DAYS INSANE! Don't you DARE break this NOW! COMMIT NOW"},
	{upper: 0, normal: "👑 {n} DAYS! You're unstoppable, don't break it!", strict: "🏆 {n} DAYS ABSOLUTE UNIT! Keep going or regret it FOREVER! COMMIT NOW"},
}

const (
	headlineZeroNormal = "💚 Start your GitHub streak today!"
	headlineZeroStrict = "🦉 Your streak is DEAD. Get coding NOW or lose everything!"
	headlineOneNormal  = "🌱 1 day streak! Keep it going, commit something today!"
	headlineOneStrict  = "🔥 You have a 1 day streak! Don't break it NOW! COMMIT NOW"
)
