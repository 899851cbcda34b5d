package scoring

// Keyword tables for the heuristic axis scorers. Matching is plain
// lowercase substring containment; each keyword counts at most once per
// category regardless of repetition.

// emotionCategories are weighted keyword groups. Every hit adds
// emotionWeight to the emotion score; the climax group and the
// high-intensity groups additionally feed the climax score.
var emotionCategories = map[string][]string{
	"physical":   {"touch", "feel", "sensation", "trembling", "shiver", "warm", "hot", "cold", "tingle", "electric"},
	"euphoric":   {"euphoria", "bliss", "ecstasy", "overwhelming", "transcendent", "divine", "heavenly"},
	"intense":    {"intense", "powerful", "strong", "deep", "profound", "overwhelming", "consuming"},
	"arousal":    {"aroused", "excited", "desire", "want", "need", "crave", "lust", "passion"},
	"love":       {"love", "adore", "cherish", "devotion", "worship", "reverence", "sacred"},
	"submission": {"submit", "surrender", "obey", "serve", "kneel", "worship", "please"},
	"climax":     {"climax", "peak", "crescendo", "explosion", "release", "burst", "waves", "wash over"},
}

// highIntensityCategories boost the climax score at climaxSecondaryWeight.
var highIntensityCategories = []string{"euphoric", "intense", "arousal"}

const (
	emotionWeight         = 5
	climaxPrimaryWeight   = 15
	climaxSecondaryWeight = 8
	firstPersonWeight     = 5
	sensoryWeight         = 3
	lengthBonusCap        = 30
	wordsPerLengthPoint   = 20
)

// firstPersonPhrases reward immersive first-person present-tense writing.
var firstPersonPhrases = []string{"i am", "i feel", "i see", "i hear", "i touch", "my body", "my heart"}

// sensoryWords reward sensory grounding.
var sensoryWords = []string{"see", "hear", "smell", "taste", "touch", "feel"}

// Realism scorer tables.
var (
	detailKeywords = []string{
		"exactly", "precisely", "specifically", "detailed", "clear", "vivid",
		"texture", "temperature", "pressure", "rhythm", "pattern", "color",
		"sound", "voice", "whisper", "breath", "heartbeat", "pulse",
	}
	bodyPartKeywords    = []string{"hands", "fingers", "lips", "skin", "hair", "eyes", "neck", "shoulders"}
	environmentKeywords = []string{"room", "bed", "floor", "wall", "window", "light", "shadow", "space"}
	temporalKeywords    = []string{"then", "next", "after", "before", "while", "during", "suddenly", "slowly"}
)

const (
	detailWeight      = 8
	bodyPartWeight    = 5
	environmentWeight = 4
	temporalWeight    = 3
	lengthBonusAt200  = 10
	lengthBonusAt500  = 10
)

// Companion-bond scorer tables.
var (
	proximityWords  = []string{"with", "together", "embrace", "kiss", "touch", "hold", "love"}
	connectionWords = []string{"love", "adore", "worship", "desire", "cherish", "devoted"}
)

const (
	mentionWeight    = 10
	proximityWeight  = 15
	connectionWeight = 20
)
