package model

// Criterion 集計対象の評価軸
type Criterion string

// CriterionConstants は評価軸の定数
const (
	CriterionNote     Criterion = "note"
	CriterionSecurite Criterion = "securite"
	CriterionProprete Criterion = "proprete"
)

// CriterionRange 評価軸ごとの有効範囲
type CriterionRange struct {
	Min float64
	Max float64
}

// CriterionRangeMap は評価軸から有効範囲へのマッピング
var CriterionRangeMap = map[Criterion]CriterionRange{
	CriterionNote:     {Min: 0, Max: 5},
	CriterionSecurite: {Min: 0, Max: 10},
	CriterionProprete: {Min: 0, Max: 10},
}

// ParseCriterion は文字列から評価軸を取得する
func ParseCriterion(s string) (Criterion, bool) {
	c := Criterion(s)
	_, ok := CriterionRangeMap[c]
	return c, ok
}

// RangeOf は評価軸の有効範囲を取得する
func (c Criterion) RangeOf() CriterionRange {
	return CriterionRangeMap[c]
}

// GetAllCriteria は全評価軸の一覧を取得する
func GetAllCriteria() []Criterion {
	return []Criterion{CriterionNote, CriterionSecurite, CriterionProprete}
}

// DefaultAuditRanges は監査で使う既定のフィールド範囲
func DefaultAuditRanges() []FieldRange {
	ranges := make([]FieldRange, 0, len(CriterionRangeMap))
	for _, c := range GetAllCriteria() {
		r := c.RangeOf()
		ranges = append(ranges, FieldRange{Field: string(c), Min: r.Min, Max: r.Max})
	}
	return ranges
}

// バッジの色
const (
	BadgeGreen  = "green"
	BadgeOrange = "orange"
	BadgeRed    = "red"
)

// ThemeConstants はアクションのテーマ定数
const (
	ThemeProprete      = "proprete"
	ThemeSecurite      = "securite"
	ThemeEnvironnement = "environnement"
	ThemeEntraide      = "entraide"
	ThemeMobilite      = "mobilite"
	ThemeDecoration    = "decoration"
	ThemeAutre         = "autre"
)

// ActionTypeMap はテーマごとに選択できるアクション種別
var ActionTypeMap = map[string][]string{
	ThemeProprete:      {"Nettoyage des espaces publics", "Installation de poubelles", "Tri des déchets", "Ramassage citoyen", "Autre"},
	ThemeSecurite:      {"Ronde de quartier", "Installation d’éclairage", "Signalisation zones à risques", "Groupe de vigilance locale", "Autre"},
	ThemeEnvironnement: {"Plantation d’arbres", "Jardin partagé", "Collecte déchets verts", "Lutte contre nuisibles", "Autre"},
	ThemeEntraide:      {"Distribution alimentaire", "Covoiturage solidaire", "Garde d’enfants", "Collecte de vêtements", "Autre"},
	ThemeMobilite:      {"Zone piétonne", "Parking vélos", "Réaménagement trottoirs", "Proposition de circuit de bus", "Autre"},
	ThemeDecoration:    {"Fresques murales", "Jardinières de rue", "Réhabilitation de bancs", "Mise en valeur monuments", "Autre"},
}

// ThemeNameMap はテーマIDから表示名へのマッピング
var ThemeNameMap = map[string]string{
	ThemeProprete:      "Propreté",
	ThemeSecurite:      "Sécurité",
	ThemeEnvironnement: "Environnement",
	ThemeEntraide:      "Entraide",
	ThemeMobilite:      "Mobilité",
	ThemeDecoration:    "Décoration",
	ThemeAutre:         "Autre",
}

// GetThemeDisplayName はテーマIDから表示名を取得する
func GetThemeDisplayName(theme string) string {
	if name, ok := ThemeNameMap[theme]; ok {
		return name
	}
	return theme // デフォルトはそのまま返す
}

// IsValidActionType はテーマに属するアクション種別かチェック
func IsValidActionType(theme, actionType string) bool {
	for _, t := range ActionTypeMap[theme] {
		if t == actionType {
			return true
		}
	}
	return false
}

// GetAllThemes は発案可能なテーマの一覧を取得する
func GetAllThemes() []string {
	return []string{
		ThemeProprete,
		ThemeSecurite,
		ThemeEnvironnement,
		ThemeEntraide,
		ThemeMobilite,
		ThemeDecoration,
	}
}

// Firestore コレクション名
const (
	CollectionReviews = "avis"
	CollectionActions = "actions"
)
