package domain

import "github.com/go-gl/mathgl/mgl64"

// Box - ось-ориентированный параллелепипед: центр и полный размер по осям.
type Box struct {
	Center mgl64.Vec3
	Size   mgl64.Vec3
}

// Scaled возвращает коробку с тем же центром и размером, умноженным на k.
func (b Box) Scaled(k float64) Box {
	return Box{Center: b.Center, Size: b.Size.Mul(k)}
}

// Half - половины размеров по осям.
func (b Box) Half() mgl64.Vec3 {
	return b.Size.Mul(0.5)
}
