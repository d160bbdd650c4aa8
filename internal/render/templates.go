package render

// Fragment templates rendered by the console. html/template escapes every
// interpolated value, so user-entered text is inert in the output.

const courseFormTemplate = `<form id="course-form" data-course-id="{{.Course.ID}}">
  <h2>{{.Title}}</h2>
  <div class="form-row">
    <label for="name">Nome</label>
    <input type="text" id="name" name="name" value="{{.Course.Name}}">
  </div>
  <div class="form-row">
    <label for="level">Nível</label>
    <input type="text" id="level" name="level" value="{{.Course.Level}}">
  </div>
  <div class="form-row">
    <label for="category">Categoria</label>
    <select id="category" name="category">
      {{range .Categories}}<option value="{{.}}"{{if eq . $.Course.Category}} selected{{end}}>{{.}}</option>
      {{end}}
    </select>
  </div>
  <div class="form-row">
    <label for="martialArtId">Arte marcial</label>
    <select id="martialArtId" name="martialArtId">
      <option value="">Selecione</option>
      {{range .MartialArts}}<option value="{{.ID}}"{{if eq .ID $.Course.MartialArtID}} selected{{end}}>{{.Name}}</option>
      {{end}}
    </select>
  </div>
  <div class="form-row">
    <label for="duration">Duração (semanas)</label>
    <input type="number" id="duration" name="duration" value="{{.Course.Duration}}">
  </div>
  <div class="form-row">
    <label for="classesPerWeek">Aulas por semana</label>
    <input type="number" id="classesPerWeek" name="classesPerWeek" value="{{.Course.ClassesPerWeek}}">
  </div>
  <div class="form-row">
    <label for="minAge">Idade mínima</label>
    <input type="number" id="minAge" name="minAge" value="{{.Course.MinAge}}">
  </div>
  <div class="form-row">
    <label for="description">Descrição</label>
    <textarea id="description" name="description">{{.Course.Description}}</textarea>
  </div>
  <div class="form-row form-list" data-list="objectives">
    <label>Objetivos</label>
    {{range .Course.Objectives}}<input type="text" name="objectives" value="{{.}}">
    {{end}}<input type="text" name="objectives" value="" placeholder="Novo objetivo">
  </div>
  <div class="form-row">
    <label><input type="checkbox" name="isActive" value="true"{{if .Course.IsActive}} checked{{end}}> Curso ativo</label>
  </div>
</form>
`

const scheduleGridTemplate = `{{if not .Weeks}}<div class="empty-state">Nenhum cronograma carregado</div>{{else}}<div class="schedule-grid">
{{range .Weeks}}  <section class="schedule-week">
    <h3>Semana {{.Week}}</h3>
    {{range .Lessons}}<article class="schedule-lesson" data-lesson-id="{{.ID}}">
      <h4>Aula {{.Lesson}}{{if .Name}} - {{.Name}}{{end}}</h4>
      {{if .Techniques}}<ul class="lesson-techniques">
        {{range .Techniques}}<li>{{.Name}}</li>
        {{end}}</ul>{{else}}<p class="empty-state">Sem técnicas atribuídas</p>{{end}}
    </article>
    {{end}}</section>
{{end}}</div>{{end}}
`

const techniquesListTemplate = `{{if not .}}<div class="empty-state">Nenhuma técnica vinculada</div>{{else}}<ul class="techniques-list">
{{range .}}  <li data-technique-id="{{.TechniqueID}}">
    <span class="technique-name">{{with .Technique}}{{.Name}}{{end}}</span>
    {{if .LessonPlans}}<span class="technique-lessons">{{range $i, $ref := .LessonPlans}}{{if $i}}, {{end}}S{{$ref.WeekNumber}}A{{$ref.LessonNumber}}{{end}}</span>{{end}}
    <button type="button" class="remove-technique" data-technique-id="{{.TechniqueID}}">Remover</button>
  </li>
{{end}}</ul>{{end}}
`

const financialPanelTemplate = `<div class="financial-panel">
{{if .Subscription}}  <section class="subscription">
    <h3>Assinatura atual</h3>
    <p>{{.Subscription.PlanName}} - {{money .Subscription.Price}} ({{.Subscription.Status}})</p>
  </section>
{{else}}  <p class="empty-state">Nenhuma assinatura ativa</p>
{{end}}{{if not .BillingPlans}}  <p class="empty-state">Nenhum plano disponível</p>
{{else}}  <section class="plans">
    <h3>Planos</h3>
    {{range .BillingPlans}}<article class="plan" data-plan-id="{{.ID}}">
      <h4>{{.Name}}</h4>
      <p class="plan-price">{{money .Price}}</p>
      {{if .Features}}<ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul>{{end}}
    </article>
    {{end}}</section>
{{end}}{{if .Financial}}  <section class="entries">
    <h3>Histórico financeiro</h3>
    <table>
      <tr><th>Descrição</th><th>Valor</th><th>Situação</th></tr>
      {{range .Financial}}<tr><td>{{.Description}}</td><td>{{money .Amount}}</td><td>{{.Status}}</td></tr>
      {{end}}</table>
  </section>
{{else}}  <p class="empty-state">Nenhum lançamento financeiro</p>
{{end}}</div>
`

const dashboardTemplate = `<div class="portal-dashboard">
{{if .Student}}  <h2>Olá, {{.Student.User.FirstName}}</h2>
{{end}}{{if not .Progress}}  <p class="empty-state">Nenhum curso em andamento</p>
{{else}}  <section class="progress">
    {{range .Progress}}<article class="course-progress">
      <h4>{{.CourseName}}</h4>
      <progress max="100" value="{{printf "%.0f" .Progress}}"></progress>
      <span>{{.CompletedLessons}}/{{.TotalLessons}} aulas</span>
    </article>
    {{end}}</section>
{{end}}{{if not .NextClasses}}  <p class="empty-state">Nenhuma aula agendada</p>
{{else}}  <section class="next-classes">
    <h3>Próximas aulas</h3>
    <ul>{{range .NextClasses}}<li>{{.Weekday}} {{.StartTime}} - {{.CourseName}}</li>{{end}}</ul>
  </section>
{{end}}</div>
`

const paymentsTableTemplate = `{{if not .}}<p class="empty-state">Nenhum pagamento encontrado</p>{{else}}<table class="payments">
  <tr><th>Descrição</th><th>Valor</th><th>Vencimento</th><th>Situação</th></tr>
{{range .}}  <tr data-payment-id="{{.ID}}"><td>{{.Description}}</td><td>{{money .Amount}}</td><td>{{.DueDate}}</td><td>{{.Status}}</td></tr>
{{end}}</table>{{end}}
`

const rankingTableTemplate = `{{if not .}}<p class="empty-state">Ranking indisponível</p>{{else}}<table class="ranking">
  <tr><th>#</th><th>Aluno</th><th>Faixa</th><th>Pontos</th></tr>
{{range .}}  <tr><td>{{.Position}}</td><td>{{.StudentName}}</td><td>{{.Belt}}</td><td>{{.Points}}</td></tr>
{{end}}</table>{{end}}
`
