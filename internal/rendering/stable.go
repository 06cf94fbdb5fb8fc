package rendering

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pdfEpoch replaces the compositor's wall-clock Info dates.
const pdfEpoch = "D:19700101000000Z"

// docxEpoch is the earliest time a zip header can carry.
var docxEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	startXRefRE = regexp.MustCompile(`startxref\s+(\d+)\s+%%EOF\s*$`)
	objHeaderRE = regexp.MustCompile(`^\d+\s+\d+\s+obj\s*`)
	streamRE    = regexp.MustCompile(`>>\s*stream\r?\n`)
	indRefRE    = regexp.MustCompile(`\b(\d+) (\d+) R\b`)
	infoDateRE  = regexp.MustCompile(`/(CreationDate|ModDate)\s*\([^)]*\)`)
)

type pdfObject struct {
	nr     int
	offset int64
	obj    types.Object
	body   []byte
}

// stablePDF rewrites compositor output into a canonical form: objects are
// renumbered in reference order starting at the catalog, Info dates are
// pinned to pdfEpoch, and the file ID is a digest of the body.
func stablePDF(raw []byte) ([]byte, error) {
	ctx, err := api.ReadContext(bytes.NewReader(raw), pdfConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to read compositor output: %w", err)
	}
	if ctx.Root == nil {
		return nil, fmt.Errorf("compositor output has no catalog")
	}
	m := startXRefRE.FindSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("compositor output has no startxref")
	}
	xrefAt, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil || xrefAt <= 0 || xrefAt > int64(len(raw)) {
		return nil, fmt.Errorf("compositor output has a bad startxref")
	}

	var objs []*pdfObject
	byNr := map[int]*pdfObject{}
	for nr, e := range ctx.Table {
		if e == nil || e.Free || e.Compressed || e.Offset == nil || *e.Offset <= 0 || *e.Offset >= xrefAt {
			continue
		}
		o := &pdfObject{nr: nr, offset: *e.Offset, obj: e.Object}
		objs = append(objs, o)
		byNr[nr] = o
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("compositor output has no objects")
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].offset < objs[j].offset })
	for i, o := range objs {
		end := xrefAt
		if i+1 < len(objs) {
			end = objs[i+1].offset
		}
		o.body = objHeaderRE.ReplaceAll(raw[o.offset:end], nil)
	}

	order := pdfObjectOrder(byNr, int(ctx.Root.ObjectNumber), ctx.Info)
	renum := make(map[int]int, len(order))
	for i, nr := range order {
		renum[nr] = i + 1
	}
	ref := func(b []byte) []byte {
		return indRefRE.ReplaceAllFunc(b, func(s []byte) []byte {
			sm := indRefRE.FindSubmatch(s)
			old, _ := strconv.Atoi(string(sm[1]))
			if n, ok := renum[old]; ok {
				return []byte(strconv.Itoa(n) + " 0 R")
			}
			return s
		})
	}

	var out bytes.Buffer
	out.Write(raw[:objs[0].offset])
	offsets := make([]int, len(order))
	for i, nr := range order {
		o := byNr[nr]
		head, tail := o.body, []byte(nil)
		if _, ok := o.obj.(types.StreamDict); ok {
			if loc := streamRE.FindIndex(o.body); loc != nil {
				head, tail = o.body[:loc[1]], o.body[loc[1]:]
			}
		}
		head = ref(head)
		if ctx.Info != nil && nr == int(ctx.Info.ObjectNumber) {
			head = infoDateRE.ReplaceAll(head, []byte("/$1 ("+pdfEpoch+")"))
		}
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n", i+1)
		out.Write(head)
		out.Write(tail)
	}

	sum := sha256.Sum256(out.Bytes())
	id := hex.EncodeToString(sum[:16])

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(order)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	out.WriteString("trailer\n<<")
	fmt.Fprintf(&out, "/ID [<%s> <%s>]", id, id)
	if ctx.Info != nil {
		if n, ok := renum[int(ctx.Info.ObjectNumber)]; ok {
			fmt.Fprintf(&out, "/Info %d 0 R", n)
		}
	}
	fmt.Fprintf(&out, "/Root %d 0 R/Size %d>>\n", renum[int(ctx.Root.ObjectNumber)], len(order)+1)
	fmt.Fprintf(&out, "startxref\n%d\n%%%%EOF\n", xref)
	return out.Bytes(), nil
}

// pdfObjectOrder walks the object graph breadth first from the catalog and
// then the Info dict, following references in dict key order. Objects not
// reachable from either come last, by original number.
func pdfObjectOrder(objs map[int]*pdfObject, root int, info *types.IndirectRef) []int {
	seen := map[int]bool{}
	var order []int
	var queue []int
	push := func(nr int) {
		if _, ok := objs[nr]; ok && !seen[nr] {
			seen[nr] = true
			queue = append(queue, nr)
		}
	}
	visit := func(start int) {
		push(start)
		for len(queue) > 0 {
			nr := queue[0]
			queue = queue[1:]
			order = append(order, nr)
			for _, r := range pdfRefs(objs[nr].obj) {
				push(r)
			}
		}
	}
	visit(root)
	if info != nil {
		visit(int(info.ObjectNumber))
	}

	var rest []int
	for nr := range objs {
		if !seen[nr] {
			rest = append(rest, nr)
		}
	}
	sort.Ints(rest)
	return append(order, rest...)
}

func pdfRefs(o types.Object) []int {
	switch v := o.(type) {
	case types.IndirectRef:
		return []int{int(v.ObjectNumber)}
	case *types.IndirectRef:
		if v == nil {
			return nil
		}
		return []int{int(v.ObjectNumber)}
	case types.Array:
		var out []int
		for _, e := range v {
			out = append(out, pdfRefs(e)...)
		}
		return out
	case types.Dict:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []int
		for _, k := range keys {
			out = append(out, pdfRefs(v[k])...)
		}
		return out
	case types.StreamDict:
		return pdfRefs(v.Dict)
	case *types.StreamDict:
		if v == nil {
			return nil
		}
		return pdfRefs(v.Dict)
	}
	return nil
}

// stableDOCX re-packs a .docx archive with entries in name order, the
// content types part first, and every modification time pinned to
// docxEpoch.
func stableDOCX(raw []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx package: %w", err)
	}
	files := append([]*zip.File(nil), zr.File...)
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i].Name, files[j].Name
		if (a == contentTypesPart) != (b == contentTypesPart) {
			return a == contentTypesPart
		}
		return a < b
	})

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: docxEpoch})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		_, err = io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close docx package: %w", err)
	}
	return out.Bytes(), nil
}

const contentTypesPart = "[Content_Types].xml"
