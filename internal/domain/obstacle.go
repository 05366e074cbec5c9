package domain

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ObstacleType - вариант формы препятствия
type ObstacleType uint8

const (
	ObstacleUnknown ObstacleType = iota
	ObstacleAsteroid
	ObstaclePlanet
	ObstacleSatellite
	ObstacleWormhole
)

var obstacleStringToType = map[string]ObstacleType{
	"asteroid":  ObstacleAsteroid,
	"planet":    ObstaclePlanet,
	"satellite": ObstacleSatellite,
	"wormhole":  ObstacleWormhole,
}

var obstacleTypeToString = map[ObstacleType]string{
	ObstacleAsteroid:  "asteroid",
	ObstaclePlanet:    "planet",
	ObstacleSatellite: "satellite",
	ObstacleWormhole:  "wormhole",
}

// ParseObstacleType конвертирует имя (без учета регистра) в ObstacleType
func ParseObstacleType(s string) ObstacleType {
	if val, ok := obstacleStringToType[strings.ToLower(s)]; ok {
		return val
	}
	return ObstacleUnknown
}

func (t ObstacleType) String() string {
	if val, ok := obstacleTypeToString[t]; ok {
		return val
	}
	return "unknown"
}

// ObstacleSpec - размеры и высоты одного варианта.
type ObstacleSpec struct {
	Type        ObstacleType
	Size        mgl64.Vec3 // ширина, высота, глубина
	SpawnHeight float64    // высота центра при появлении
	MinHeight   float64    // ниже этой высоты препятствие не опускается
}

// ObstacleCatalog - варианты в порядке выбора генератором.
var ObstacleCatalog = []ObstacleSpec{
	{Type: ObstacleAsteroid, Size: mgl64.Vec3{1.2, 1.2, 1.2}, SpawnHeight: math.Max(1.2/2+0.2, 0.5), MinHeight: 0.3},
	{Type: ObstaclePlanet, Size: mgl64.Vec3{1.8, 1.8, 1.8}, SpawnHeight: math.Max(1.8/2+0.3, 1.0), MinHeight: 0.7},
	{Type: ObstacleSatellite, Size: mgl64.Vec3{2.0, 0.5, 0.5}, SpawnHeight: math.Max(2.0*0.8, 1.0), MinHeight: 0.6},
	{Type: ObstacleWormhole, Size: mgl64.Vec3{1.5, 1.5, 0.3}, SpawnHeight: math.Max(1.5/2+0.3, 1.0), MinHeight: 0.3},
}

// SpecFor ищет описание варианта. ok=false для неизвестного типа.
func SpecFor(t ObstacleType) (ObstacleSpec, bool) {
	for _, s := range ObstacleCatalog {
		if s.Type == t {
			return s, true
		}
	}
	return ObstacleSpec{}, false
}

// Obstacle - препятствие на трассе. Скорость общая, хранится в сессии.
type Obstacle struct {
	ID        int
	Type      ObstacleType
	Position  mgl64.Vec3
	Size      mgl64.Vec3
	MinHeight float64
}

func (o *Obstacle) Box() Box {
	return Box{Center: o.Position, Size: o.Size}
}

// Trail - отрезок следа, оставленный прыжком.
type Trail struct {
	Position mgl64.Vec3
	Size     mgl64.Vec3
}

// Collectible - бонусная сфера.
type Collectible struct {
	ID       int
	Position mgl64.Vec3
	Size     mgl64.Vec3
}

func (c *Collectible) Box() Box {
	return Box{Center: c.Position, Size: c.Size}
}
