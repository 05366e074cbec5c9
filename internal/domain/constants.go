package domain

// Геометрия трассы
const (
	PlayerSize   = 0.5 // ребро куба игрока
	PlayerStartY = 0.5 // стартовая высота (= уровень земли)
)

// Геометрия объектов, которые летят к игроку вместе с препятствиями
const (
	TrailWidth, TrailHeight, TrailDepth = 0.5, 0.1, 1.0
	TrailOffsetZ                        = 1.0 // след остается на единицу позади игрока

	CollectibleSize    = 0.6
	CollectibleSpreadX = 3.0 // x = (rand-0.5)*3
	CollectibleBaseY   = 1.0
	CollectibleRangeY  = 1.5
)
