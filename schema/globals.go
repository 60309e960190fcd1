package schema

import "sync"

// Location is a reference point for a country's weather series.
type Location struct {
	Country   string
	Place     string
	Latitude  float64
	Longitude float64
}

var (
	topicKeywords   map[string][]string
	cropKeywords    map[string][]string
	generalKeywords map[string][]string
	fetchLocations  []Location

	topicOnce    sync.Once
	cropOnce     sync.Once
	generalOnce  sync.Once
	locationOnce sync.Once
)

// TopicKeywords returns the static topic -> match terms table used by the
// preprocessor. Loaded once; callers must not mutate it. The term lists mix
// English, Swahili and Luganda because the corpus does.
func TopicKeywords() map[string][]string {
	topicOnce.Do(func() {
		topicKeywords = map[string][]string{
			"pest": {
				"pest", "insect", "bug", "aphid", "caterpillar", "worm", "beetle",
				"locust", "grasshopper", "termite", "ant", "fly", "wadudu", "mende",
				"infestation", "attack", "damage", "control", "spray", "pesticide",
			},
			"disease": {
				"disease", "fungus", "blight", "wilt", "rot", "mold", "virus",
				"bacterial", "infection", "ugonjwa", "obulwadde", "sick", "dying",
			},
			"water": {
				"water", "irrigation", "drought", "dry", "watering", "rain",
				"rainfall", "moisture", "maji", "amazzi", "ukame", "ekyeya",
			},
			"planting": {
				"plant", "planting", "seed", "sowing", "germination", "nursery",
				"transplant", "spacing", "panda", "mbegu", "ensigo", "okusimba",
			},
			"harvest": {
				"harvest", "harvesting", "mature", "maturity", "ready", "ripe",
				"yield", "production", "mavuno", "okukungula", "amakungula",
			},
			"fertilizer": {
				"fertilizer", "manure", "compost", "nutrient", "nitrogen", "phosphorus",
				"potassium", "npk", "mbolea", "obugimusa", "feeding", "application",
			},
			"soil": {
				"soil", "land", "earth", "ground", "udongo", "ettaka", "ph",
				"fertility", "preparation", "tillage", "plowing",
			},
			"crop_stress": {
				"wilting", "yellowing", "drying", "stunted", "weak", "poor growth",
				"stress", "struggling", "not growing", "dying", "brown", "curling",
			},
			"weather": {
				"weather", "climate", "temperature", "heat", "cold", "frost",
				"sun", "shade", "wind", "hali ya hewa", "embeera y'obudde",
			},
			"market": {
				"market", "price", "sell", "selling", "buyer", "trade", "soko",
				"akatale", "profit", "income", "value",
			},
		}
	})
	return topicKeywords
}

// CropKeywords returns the crop category -> match terms table used by the
// keyword classifier. Loaded once; callers must not mutate it.
func CropKeywords() map[string][]string {
	cropOnce.Do(func() {
		cropKeywords = map[string][]string{
			"cereals":     {"maize", "corn", "rice", "wheat", "millet", "sorghum", "barley", "oats"},
			"vegetables":  {"tomato", "cabbage", "onion", "carrot", "kale", "spinach", "pepper", "eggplant", "cucumber"},
			"tubers":      {"potato", "cassava", "yam", "sweet potato"},
			"legumes":     {"bean", "pea", "lentil", "groundnut", "peanut", "soybean"},
			"fruits":      {"banana", "plantain", "mango", "papaya", "avocado", "orange", "pineapple"},
			"cash_crops":  {"coffee", "tea", "cotton", "tobacco", "sugarcane"},
			"livestock":   {"chicken", "cattle", "cow", "pig", "goat", "sheep", "duck", "turkey", "rabbit"},
			"poultry":     {"poultry", "hen", "rooster", "chick", "egg", "broiler", "layer"},
			"aquaculture": {"fish", "tilapia", "catfish", "pond"},
		}
	})
	return cropKeywords
}

// GeneralKeywords returns the general-topic -> match terms table used by the
// keyword classifier. Loaded once; callers must not mutate it.
func GeneralKeywords() map[string][]string {
	generalOnce.Do(func() {
		generalKeywords = map[string][]string{
			"soil":              {"soil", "erosion", "fertility", "compost", "manure", "organic matter"},
			"weather":           {"weather", "rain", "rainfall", "drought", "climate", "temperature", "season"},
			"water":             {"water", "irrigation", "watering", "moisture", "drainage"},
			"pests":             {"pest", "insect", "bug", "aphid", "worm", "beetle"},
			"diseases":          {"disease", "fungus", "blight", "rot", "wilt", "virus"},
			"weeds":             {"weed", "grass", "invasive"},
			"fertilizer":        {"fertilizer", "fertiliser", "nutrient", "npk", "nitrogen", "phosphorus", "potassium"},
			"farming_practices": {"planting", "harvest", "harvesting", "pruning", "mulching", "spacing", "rotation"},
			"general_advice":    {"farming", "agriculture", "crop", "farm", "grow", "cultivate"},
		}
	})
	return generalKeywords
}

// FetchLocations returns the reference points downloaded by the fetch command,
// one per country, keyed off each capital.
func FetchLocations() []Location {
	locationOnce.Do(func() {
		fetchLocations = []Location{
			{Country: "kenya", Place: "Nairobi", Latitude: -1.2921, Longitude: 36.8219},
			{Country: "uganda", Place: "Kampala", Latitude: 0.3476, Longitude: 32.5825},
			{Country: "tanzania", Place: "Dodoma", Latitude: -6.1630, Longitude: 35.7516},
		}
	})
	return fetchLocations
}
