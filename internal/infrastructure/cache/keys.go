package cache

const keyPrefix = "devmatch:"

const (
	KeyDeveloperPool = keyPrefix + "developers:matchable"
	KeySkillCatalog  = keyPrefix + "skills:catalog"
)

// SkillKeysPattern matches every cached skill catalog entry.
const SkillKeysPattern = keyPrefix + "skills:*"
