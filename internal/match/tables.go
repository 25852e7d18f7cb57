package match

// concept is one category-concept group. Keywords are stored in
// normalized form (see normalizeKey) and must be unique across concepts;
// matching scans concepts in declared order, so the tables stay
// deterministic without relying on map iteration.
type concept struct {
	name     string
	keywords []string
	icon     string
	color    string
}

// concepts groups near-synonyms and translations of common theme names,
// and carries the icon/color defaults used when a theme is auto-created.
var concepts = []concept{
	{
		name:     "work",
		keywords: []string{"work", "工作", "job", "career", "office", "职场", "事业"},
		icon:     "💼",
		color:    "4A90D9",
	},
	{
		name:     "life",
		keywords: []string{"life", "生活", "daily", "日常", "living", "lifestyle"},
		icon:     "🌿",
		color:    "67C23A",
	},
	{
		name:     "study",
		keywords: []string{"study", "学习", "school", "学业", "course", "课程", "education"},
		icon:     "📚",
		color:    "9B59B6",
	},
	{
		name:     "reading",
		keywords: []string{"reading", "阅读", "读书", "books", "book"},
		icon:     "📖",
		color:    "8E7CC3",
	},
	{
		name:     "travel",
		keywords: []string{"travel", "旅行", "旅游", "trip", "journey", "出行"},
		icon:     "✈️",
		color:    "45B7D1",
	},
	{
		name:     "food",
		keywords: []string{"food", "美食", "cooking", "烹饪", "recipe", "菜谱", "餐厅"},
		icon:     "🍜",
		color:    "E67E22",
	},
	{
		name:     "idea",
		keywords: []string{"idea", "灵感", "inspiration", "想法", "创意", "thought", "思考"},
		icon:     "💡",
		color:    "F1C40F",
	},
	{
		name:     "movie",
		keywords: []string{"movie", "电影", "film", "cinema", "影视", "观影"},
		icon:     "🎬",
		color:    "E74C3C",
	},
	{
		name:     "music",
		keywords: []string{"music", "音乐", "song", "歌曲", "歌单"},
		icon:     "🎵",
		color:    "1ABC9C",
	},
	{
		name:     "sport",
		keywords: []string{"sport", "sports", "运动", "fitness", "健身", "exercise", "锻炼"},
		icon:     "🏃",
		color:    "2ECC71",
	},
	{
		name:     "health",
		keywords: []string{"health", "健康", "养生", "wellness"},
		icon:     "💚",
		color:    "27AE60",
	},
	{
		name:     "design",
		keywords: []string{"design", "设计"},
		icon:     "🎨",
		color:    "FF6B9D",
	},
	{
		name:     "code",
		keywords: []string{"code", "coding", "编程", "代码", "programming", "developer", "开发", "tech", "技术"},
		icon:     "💻",
		color:    "34495E",
	},
	{
		name:     "finance",
		keywords: []string{"finance", "理财", "money", "财务", "invest", "investment", "投资", "记账"},
		icon:     "💰",
		color:    "F39C12",
	},
	{
		name:     "diary",
		keywords: []string{"diary", "日记", "journal", "随笔", "随记"},
		icon:     "✏️",
		color:    "95A5A6",
	},
	{
		name:     "emotion",
		keywords: []string{"emotion", "情感", "心情", "mood", "feeling", "feelings"},
		icon:     "💭",
		color:    "FF8C94",
	},
	{
		name:     "family",
		keywords: []string{"family", "家庭", "家人", "parenting", "育儿"},
		icon:     "🏠",
		color:    "FFB347",
	},
	{
		name:     "game",
		keywords: []string{"game", "games", "gaming", "游戏"},
		icon:     "🎮",
		color:    "8E44AD",
	},
}

// translationPairs lists single-term translations checked in both
// directions as the last matching strategy. Terms are normalized. The
// dictionary deliberately reaches beyond the concept groups: terms like
// 摄影 or 诗歌 have no group but still deserve a cross-language match.
var translationPairs = [][2]string{
	{"work", "工作"},
	{"life", "生活"},
	{"study", "学习"},
	{"travel", "旅行"},
	{"food", "美食"},
	{"reading", "阅读"},
	{"movie", "电影"},
	{"music", "音乐"},
	{"sports", "运动"},
	{"health", "健康"},
	{"design", "设计"},
	{"idea", "灵感"},
	{"inspiration", "灵感"},
	{"diary", "日记"},
	{"finance", "理财"},
	{"family", "家庭"},
	{"game", "游戏"},
	{"code", "编程"},
	{"emotion", "情感"},
	{"fitness", "健身"},
	{"photography", "摄影"},
	{"writing", "写作"},
	{"dream", "梦想"},
	{"nature", "自然"},
	{"pet", "宠物"},
	{"fashion", "时尚"},
	{"art", "艺术"},
	{"quote", "语录"},
	{"poetry", "诗歌"},
	{"shopping", "购物"},
	{"plan", "计划"},
	{"goal", "目标"},
	{"memo", "备忘"},
	{"love", "爱情"},
	{"friend", "朋友"},
}

// keywordConcept maps each normalized keyword to its concept index for
// exact lookups.
var keywordConcept = buildKeywordIndex()

// translations holds translationPairs materialized in both directions.
var translations = buildTranslations()

func buildKeywordIndex() map[string]int {
	index := make(map[string]int)
	for i, c := range concepts {
		for _, kw := range c.keywords {
			index[kw] = i
		}
	}
	return index
}

func buildTranslations() map[string][]string {
	table := make(map[string][]string, len(translationPairs)*2)
	for _, pair := range translationPairs {
		table[pair[0]] = append(table[pair[0]], pair[1])
		table[pair[1]] = append(table[pair[1]], pair[0])
	}
	return table
}
