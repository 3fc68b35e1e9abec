package nlp

import (
	"io/ioutil"
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const defaultMinScore = 0.85

type concept struct {
	Name   string `yaml:"name"`
	Code   string `yaml:"code"`
	System string `yaml:"system"`
}

type codingTable struct {
	Concepts []concept `yaml:"concepts"`
}

//FileCoder assigns codes from a concept table loaded from a yaml file.
//The best matching concept above nlp.codingMinScore wins
type FileCoder struct {
	concepts []concept
	minScore float64
}

//NewFileCoder creates FileCoder instance from the file
func NewFileCoder(file string) (*FileCoder, error) {
	cmdapp.Log.Infof("Init coding table from: %s", file)
	if file == "" {
		return nil, errors.New("No coding file provided")
	}
	fData, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load: "+file)
	}
	res, err := loadCodingYaml(fData)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load: "+file)
	}
	res.minScore = cmdapp.Config.GetFloat64("nlp.codingMinScore")
	if res.minScore <= 0 {
		res.minScore = defaultMinScore
	}
	cmdapp.Log.Infof("Loaded %d concepts", len(res.concepts))
	return res, nil
}

func loadCodingYaml(data []byte) (*FileCoder, error) {
	ct := codingTable{}
	err := yaml.Unmarshal(data, &ct)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal")
	}
	if len(ct.Concepts) == 0 {
		return nil, errors.New("No concepts in yaml")
	}
	for _, c := range ct.Concepts {
		if c.Name == "" || c.Code == "" {
			return nil, errors.New("Concept with no name or code in yaml")
		}
	}
	return &FileCoder{concepts: ct.Concepts}, nil
}

//Code assigns the best matching concept code to each uncoded entity
func (fc *FileCoder) Code(entities domain.ClinicalEntities) (domain.ClinicalEntities, error) {
	fc.codeBucket(entities.Diagnoses)
	fc.codeBucket(entities.Symptoms)
	fc.codeBucket(entities.Medications)
	return entities, nil
}

func (fc *FileCoder) codeBucket(bucket []domain.ClinicalEntity) {
	for i := range bucket {
		e := &bucket[i]
		if e.Code != "" || e.Text == "" {
			continue
		}
		if c, ok := fc.bestMatch(e.Text); ok {
			e.Code = c.Code
		}
	}
}

func (fc *FileCoder) bestMatch(text string) (concept, bool) {
	var best concept
	bestScore := 0.0
	source := strings.ToLower(text)
	for _, c := range fc.concepts {
		score := similarity(source, strings.ToLower(c.Name))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore < fc.minScore {
		return concept{}, false
	}
	return best, true
}

//similarity scores two strings in [0, 1] by shared letter bigrams
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ab, bb := bigrams(a), bigrams(b)
	ta, tb := total(ab), total(bb)
	if ta == 0 || tb == 0 {
		return 0
	}
	common := 0
	for g, n := range ab {
		if m, ok := bb[g]; ok {
			if m < n {
				n = m
			}
			common += n
		}
	}
	return 2 * float64(common) / float64(ta+tb)
}

func bigrams(s string) map[string]int {
	r := []rune(s)
	res := make(map[string]int, len(r))
	for i := 0; i+1 < len(r); i++ {
		res[string(r[i:i+2])]++
	}
	return res
}

func total(m map[string]int) int {
	res := 0
	for _, n := range m {
		res += n
	}
	return res
}
