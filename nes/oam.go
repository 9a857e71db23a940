package nes

import "fmt"

const oamSprites = 64

type objectAttributeMemory []*oamSprite

// newOAM returns object attribute memory of the given size, with each entry
// allocated in memory.
func newOAM(size int) objectAttributeMemory {
	oam := make(objectAttributeMemory, size)
	for i := range oam {
		oam[i] = new(oamSprite)
	}
	return oam
}

// oamSprite represents one entry, or sprite, in the Object Attribute memory.
type oamSprite struct {
	y         byte // Y position of the sprite
	id        byte // pattern memory ID
	attribute byte // flag specifying rendering attributes
	x         byte // X position of the sprite
}

// OAM is addressed byte-wise through OAMADDR, four bytes per sprite.
func (oam objectAttributeMemory) read(addr byte) byte {
	sprite := oam[int(addr)/4]

	switch addr % 4 {
	case 0:
		return sprite.y
	case 1:
		return sprite.id
	case 2:
		return sprite.attribute
	}
	return sprite.x
}

func (oam objectAttributeMemory) write(addr byte, data byte) {
	sprite := oam[int(addr)/4]

	switch addr % 4 {
	case 0:
		sprite.y = data
	case 1:
		sprite.id = data
	case 2:
		sprite.attribute = data
	case 3:
		sprite.x = data
	}
}

func (oam objectAttributeMemory) clear() {
	for i := range oam {
		oam[i].y = 0xFF
		oam[i].id = 0xFF
		oam[i].attribute = 0xFF
		oam[i].x = 0xFF
	}
}

// isFlippedVertical returns true if the oamSprite's vertical flip flag is set.
func (s oamSprite) isFlippedVertical() bool {
	return (s.attribute & 0x80) > 0
}

// isFlippedHorizontal returns true if the oamSprite's horizontal flip flag is set.
func (s oamSprite) isFlippedHorizontal() bool {
	return (s.attribute & 0x40) > 0
}

// String formats a sprite the way the debug panel lists it.
func (s oamSprite) String() string {
	flip := ""
	if s.isFlippedHorizontal() {
		flip += "H"
	}
	if s.isFlippedVertical() {
		flip += "V"
	}
	return fmt.Sprintf("(%3d,%3d) ID:%02X AT:%02X %s", s.x, s.y, s.id, s.attribute, flip)
}
