package assembly

import (
	"html/template"
	"strings"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

var sheetTemplates = template.Must(template.New("sheet").Parse(`
{{- define "equipment" -}}
<div class="equipment-section">
<h3>Resource Rating: {{.Resources}}</h3>
<h3>Starting Equipment:</h3>
{{- range .Equipment}}
<p>- {{.}}</p>
{{- end}}
<h3>Additional Equipment based on Resource Rating ({{.Resources}}):</h3>
{{- range .TierItems}}
<p>- {{.}}</p>
{{- end}}
</div>
{{- end -}}

{{- define "notes" -}}
<div class="character-notes">
<h3>Character Background</h3>
<p><strong>Profession:</strong> {{.Profession}}</p>
<p><strong>Upbringing:</strong> {{.Upbringing}}</p>
<h3>Ties</h3>
{{- range .Ties}}
<p>- {{.Name}}: {{.Desc}} (Strength: {{.Strength}}, {{.Bond}})</p>
{{- else}}
<p>No ties assigned</p>
{{- end}}
<h3>Benefits</h3>
{{- range .Benefits}}
<p>- <strong>{{.Name}}:</strong> {{.Description}}</p>
{{- end}}
<h3>Burdens</h3>
{{- range .Burdens}}
<p>- <strong>{{.Name}}:</strong> {{.Description}}</p>
{{- end}}
</div>
{{- end -}}

{{- define "biography" -}}
<div class="character-biography">
{{- range .}}
<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
</div>
{{- end -}}
`))

type equipmentView struct {
	Resources int
	Equipment []string
	TierItems []string
}

type tieView struct {
	Name     string
	Desc     string
	Strength int
	Bond     string
}

type traitView struct {
	Name        string
	Description string
}

type notesView struct {
	Profession string
	Upbringing string
	Ties       []tieView
	Benefits   []traitView
	Burdens    []traitView
}

type bioField struct {
	Label string
	Value string
}

func render(name string, data any) string {
	var b strings.Builder
	if err := sheetTemplates.ExecuteTemplate(&b, name, data); err != nil {
		// Templates and view data are fixed-shape, so execution cannot fail at runtime.
		panic("assembly: rendering " + name + ": " + err.Error())
	}
	return b.String()
}

func equipmentHTML(t *ruleset.Tables, p *ruleset.Profession, resources int) string {
	return render("equipment", equipmentView{
		Resources: resources,
		Equipment: p.Equipment,
		TierItems: t.ResourceTier(resources).Items,
	})
}

func notesHTML(t *ruleset.Tables, d *character.Draft, p *ruleset.Profession, u *ruleset.Upbringing) string {
	v := notesView{Profession: p.Name, Upbringing: u.Name}
	for _, tie := range d.Ties.Assigned {
		v.Ties = append(v.Ties, tieView{Name: tie.Name, Desc: tie.Desc, Strength: tie.Strength, Bond: character.StrengthDescription(tie.Strength)})
	}
	for _, id := range heldBenefits(d) {
		if b, ok := t.Benefit(id); ok {
			v.Benefits = append(v.Benefits, traitView{Name: b.Name, Description: b.Description})
		}
	}
	for _, id := range dedupe(d.AllBurdens()) {
		if b, ok := t.Burden(id); ok {
			v.Burdens = append(v.Burdens, traitView{Name: b.Name, Description: b.Description})
		}
	}
	return render("notes", v)
}

func biographyHTML(d *character.Draft) string {
	det := d.Details
	all := []bioField{
		{"Identity", det.History.Identity},
		{"Age", det.Age},
		{"Gender", det.Gender},
		{"Description", det.Description},
		{"Appearance", det.History.Appearance},
		{"Memories", det.Memories},
		{"A memory to cling to", det.MemoryClingTo},
		{"A memory to forget", det.MemoryForget},
		{"Origins", det.History.Origins},
		{"Community", det.History.Community},
		{"Motivation", det.History.Motivation},
		{"Personal traits", det.Considerations.PersonalTraits},
		{"Possessions", det.Considerations.Possessions},
		{"Beliefs", det.Considerations.Beliefs},
		{"Technology", det.Considerations.Technology},
		{"Survival", det.Considerations.Survival},
		{"Ambitions", det.Considerations.Ambitions},
	}
	fields := make([]bioField, 0, len(all))
	for _, f := range all {
		if strings.TrimSpace(f.Value) != "" {
			fields = append(fields, f)
		}
	}
	return render("biography", fields)
}
