package mesh

import (
	"bufio"
	"encoding/binary"
	"io"
)

// WriteSTL writes the model as binary STL: an 80-byte header, a triangle
// count, then one 50-byte record per triangle. Normals are recomputed from
// winding so the file stays self-consistent for transformed parts.
func WriteSTL(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "massing binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return err
	}

	for _, part := range m.Parts {
		for t := 0; t < part.TriangleCount(); t++ {
			a, b, c := part.Triangle(t)
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			rec := [12]float32{
				float32(n.X), float32(n.Y), float32(n.Z),
				float32(a.X), float32(a.Y), float32(a.Z),
				float32(b.X), float32(b.Y), float32(b.Z),
				float32(c.X), float32(c.Y), float32(c.Z),
			}
			if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
