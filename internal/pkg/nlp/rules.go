package nlp

import (
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//Rules provides phrase replacement tables for the normalizers
type Rules interface {
	Cultural() map[string]string
	Indigenous() map[string]string
}

//NewRules creates the rule source. A file configured by nlp.rulesFile
//overrides the built in tables
func NewRules() (Rules, error) {
	file := cmdapp.Config.GetString("nlp.rulesFile")
	if file == "" {
		return StaticRules{}, nil
	}
	return NewFileRules(file)
}

//StaticRules serves the built in phrase tables
type StaticRules struct{}

var culturalDefaults = map[string]string{
	"my blood is hot":             "my body feels hot, like I have a fever",
	"my spirit is tired":          "I feel very tired and low in mood",
	"the child is not active":     "the child is less active and less playful than usual",
	"the sun is burning my blood": "I feel extremely hot, like the sun is overheating my body",
}

var indigenousDefaults = map[string]string{
	"my ancestors are calling": "I feel a strong spiritual pull and emotional distress from my ancestors",
}

//Cultural returns the built in cultural phrase table
func (r StaticRules) Cultural() map[string]string {
	return culturalDefaults
}

//Indigenous returns the built in indigenous phrase table
func (r StaticRules) Indigenous() map[string]string {
	return indigenousDefaults
}

//FileRules loads phrase tables from a yml file and reloads them on change
type FileRules struct {
	v *viper.Viper
}

//NewFileRules creates FileRules instance
func NewFileRules(file string) (*FileRules, error) {
	cmdapp.Log.Infof("Init phrase rules from: %s", file)
	if file == "" {
		return nil, errors.New("No rules file provided")
	}
	f := FileRules{}
	f.v = viper.New()
	f.v.SetConfigFile(file)
	f.v.SetConfigType("yml")
	err := f.v.ReadInConfig()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read rules file: "+file)
	}

	f.v.WatchConfig()
	f.v.OnConfigChange(func(e fsnotify.Event) {
		cmdapp.Log.Infof("Rules reloaded from: %s", file)
	})
	return &f, nil
}

//Cultural returns the cultural phrase table from the file
func (fr *FileRules) Cultural() map[string]string {
	return fr.v.GetStringMapString("cultural")
}

//Indigenous returns the indigenous phrase table from the file
func (fr *FileRules) Indigenous() map[string]string {
	return fr.v.GetStringMapString("indigenous")
}
