package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes 24/32-bit true-color TGA images, raw or RLE packed.
// Many OBJ exports reference .tga diffuse maps, which the standard
// library cannot read.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16]) / 8
	if bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", data[16])
	}
	topDown := data[17]&0x20 != 0

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		src:     data[offset:],
		bpp:     bpp,
		topDown: topDown,
	}
	var err error
	if kind == tgaTrueColor {
		err = r.raw(width * height)
	} else {
		err = r.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	img     *image.RGBA
	src     []byte
	pos     int
	bpp     int
	topDown bool
	pixel   int
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel in file order.
func (r *tgaReader) put(c color.RGBA) {
	w := r.img.Rect.Dx()
	h := r.img.Rect.Dy()
	x, y := r.pixel%w, r.pixel/w
	if !r.topDown {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) raw(count int) error {
	for r.pixel < count {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

// rle decodes run-length packets. A truncated stream leaves the rest of
// the image transparent.
func (r *tgaReader) rle(count int) error {
	for r.pixel < count && r.pos < len(r.src) {
		header := r.src[r.pos]
		r.pos++
		n := int(header&0x7f) + 1

		if header&0x80 != 0 {
			c, err := r.next()
			if err != nil {
				return nil
			}
			for i := 0; i < n && r.pixel < count; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < n && r.pixel < count; i++ {
			c, err := r.next()
			if err != nil {
				return nil
			}
			r.put(c)
		}
	}
	return nil
}
