package compiler

const quoteHTMLTemplate = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>Travel Quote</title>
  <style>
    :root {
      --primary: {{.Presentation.PrimaryColor}};
      --secondary: {{.Presentation.SecondaryColor}};
      --font: "{{.Presentation.FontFamily}}";
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 24px;
      font-family: var(--font), "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .quote { max-width: 800px; margin: 0 auto; }
    .banner {
      background: var(--primary);
      color: #ffffff;
      border-radius: 8px;
      padding: 20px 24px;
      margin-bottom: 20px;
    }
    .banner h1 { margin: 0; font-size: 26px; }
    .banner .period { font-size: 14px; opacity: 0.9; margin-top: 4px; }
    .notice {
      border: 1px solid var(--secondary);
      border-left: 5px solid var(--secondary);
      border-radius: 4px;
      padding: 12px 16px;
      margin-bottom: 20px;
      font-size: 13px;
    }
    .notice ul { margin: 6px 0 0; padding-left: 18px; }
    .passengers {
      display: flex;
      gap: 24px;
      border: 1px solid #e5e7eb;
      border-radius: 6px;
      padding: 12px 18px;
      margin-bottom: 20px;
      font-size: 14px;
    }
    .passengers strong { color: var(--primary); }
    .section { margin-bottom: 24px; page-break-inside: avoid; }
    .section h2 {
      color: var(--primary);
      border-bottom: 2px solid var(--primary);
      padding-bottom: 6px;
      font-size: 18px;
    }
    .item {
      border: 1px solid #e5e7eb;
      border-radius: 6px;
      padding: 14px 16px;
      margin-bottom: 12px;
      font-size: 14px;
    }
    .item .title { font-weight: 600; margin-bottom: 6px; }
    .item .detail { color: #374151; margin-bottom: 2px; }
    .item .price {
      margin-top: 8px;
      font-weight: 700;
      color: var(--secondary);
    }
    .item .notes { margin-top: 6px; font-size: 12px; color: #6b7280; }
    .gallery-col img {
      display: block;
      width: 100%;
      border-radius: 4px;
      margin-top: 8px;
    }
    .gallery-grid-1, .gallery-grid-2, .gallery-grid-3 {
      display: grid;
      gap: 8px;
      margin-top: 8px;
    }
    .gallery-grid-1 { grid-template-columns: 1fr; }
    .gallery-grid-2 { grid-template-columns: repeat(2, 1fr); }
    .gallery-grid-3 { grid-template-columns: repeat(3, 1fr); }
    .gallery-grid-1 img, .gallery-grid-2 img, .gallery-grid-3 img {
      width: 100%;
      border-radius: 4px;
    }
    .totals {
      background: var(--primary);
      color: #ffffff;
      border-radius: 8px;
      padding: 16px 24px;
      text-align: right;
      margin-bottom: 24px;
    }
    .totals .label { font-size: 13px; text-transform: uppercase; letter-spacing: 0.04em; }
    .totals .line { font-size: 24px; font-weight: 700; margin-top: 4px; }
    .observations {
      border: 1px dashed #9ca3af;
      border-radius: 6px;
      padding: 12px 16px;
      margin-bottom: 20px;
      font-size: 13px;
      white-space: pre-wrap;
    }
    .validity { font-size: 12px; color: #6b7280; margin-bottom: 20px; }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 14px;
      font-size: 12px;
      color: #6b7280;
      display: flex;
      justify-content: space-between;
      align-items: center;
    }
    .footer img { max-height: 42px; }
    @page { size: A4; margin: 12mm; }
  </style>
</head>
<body>
  <div class="quote">
    <div class="banner">
      <h1>{{if .Quote.Destination.City}}{{.Quote.Destination.City}}, {{end}}{{.Quote.Destination.Country}}</h1>
      {{if or .Quote.Destination.Months .Quote.Destination.Year}}
      <div class="period">{{range $i, $m := .Quote.Destination.Months}}{{if $i}} / {{end}}{{$m}}{{end}}{{if .Quote.Destination.Year}} {{.Quote.Destination.Year}}{{end}}</div>
      {{end}}
    </div>

    {{if .Requirements}}
    <div class="notice">
      <strong>Migratory requirements</strong>
      <ul>
        {{range .Requirements}}<li>{{.}}</li>{{end}}
      </ul>
    </div>
    {{end}}

    {{if or .Quote.Passengers.Adults .Quote.Passengers.Minors .Quote.Passengers.Infants}}
    <div class="passengers">
      <div><strong>{{.Quote.Passengers.Adults}}</strong> adults</div>
      {{if .Quote.Passengers.Minors}}<div><strong>{{.Quote.Passengers.Minors}}</strong> minors</div>{{end}}
      {{if .Quote.Passengers.Infants}}<div><strong>{{.Quote.Passengers.Infants}}</strong> infants</div>{{end}}
    </div>
    {{end}}

    {{if .Quote.Flights}}
    <div class="section">
      <h2>Flights</h2>
      {{range .Quote.Flights}}
      <div class="item">
        <div class="title">{{.Airline}}{{if .Origin}} &middot; {{.Origin}} &rarr; {{.Destination}}{{end}}</div>
        {{if .DepartureDate}}<div class="detail">Departure: {{date .DepartureDate}}</div>{{end}}
        {{if .ReturnDate}}<div class="detail">Return: {{date .ReturnDate}}</div>{{end}}
        {{if .Baggage}}<div class="detail">Baggage: {{.Baggage}}</div>{{end}}
        {{if .ShowPrice}}{{with money .Price $.Quote.GlobalCurrency}}<div class="price">{{.}}</div>{{end}}{{end}}
        {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
        {{with gallery .Images "flight"}}{{if .Images}}<div class="{{.Class}}">{{range .Images}}<img src="{{.}}" alt="" />{{end}}</div>{{end}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Quote.Accommodations}}
    <div class="section">
      <h2>Accommodations</h2>
      {{range .Quote.Accommodations}}
      <div class="item">
        <div class="title">{{.Name}}{{if .City}} &middot; {{.City}}{{end}}</div>
        {{if .CheckIn}}<div class="detail">Check-in: {{date .CheckIn}}</div>{{end}}
        {{if .CheckOut}}<div class="detail">Check-out: {{date .CheckOut}}</div>{{end}}
        {{if .RoomType}}<div class="detail">Room: {{.RoomType}}</div>{{end}}
        {{if .MealPlan}}<div class="detail">Meal plan: {{.MealPlan}}</div>{{end}}
        {{if .ShowPrice}}{{with money .Price $.Quote.GlobalCurrency}}<div class="price">{{.}}</div>{{end}}{{end}}
        {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
        {{with gallery .Images "accommodation"}}{{if .Images}}<div class="{{.Class}}">{{range .Images}}<img src="{{.}}" alt="" />{{end}}</div>{{end}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Quote.Transfers}}
    <div class="section">
      <h2>Transfers</h2>
      {{range .Quote.Transfers}}
      <div class="item">
        <div class="title">{{.Mode}}{{if .From}} &middot; {{.From}} &rarr; {{.To}}{{end}}</div>
        {{if .Date}}<div class="detail">Date: {{date .Date}}</div>{{end}}
        {{if .ShowPrice}}{{with money .Price $.Quote.GlobalCurrency}}<div class="price">{{.}}</div>{{end}}{{end}}
        {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
        {{with gallery .Images "transfer"}}{{if .Images}}<div class="{{.Class}}">{{range .Images}}<img src="{{.}}" alt="" />{{end}}</div>{{end}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Quote.Activities}}
    <div class="section">
      <h2>Activities</h2>
      {{range .Quote.Activities}}
      <div class="item">
        <div class="title">{{.Name}}</div>
        {{if .Date}}<div class="detail">Date: {{date .Date}}</div>{{end}}
        {{if .Duration}}<div class="detail">Duration: {{.Duration}}</div>{{end}}
        {{if .ShowPrice}}{{with money .Price $.Quote.GlobalCurrency}}<div class="price">{{.}}</div>{{end}}{{end}}
        {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
        {{with gallery .Images "activity"}}{{if .Images}}<div class="{{.Class}}">{{range .Images}}<img src="{{.}}" alt="" />{{end}}</div>{{end}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Quote.Cruises}}
    <div class="section">
      <h2>Cruises</h2>
      {{range .Quote.Cruises}}
      <div class="item">
        <div class="title">{{.Line}}{{if .Ship}} &middot; {{.Ship}}{{end}}</div>
        {{if .DeparturePort}}<div class="detail">Departure port: {{.DeparturePort}}</div>{{end}}
        {{if .DepartureDate}}<div class="detail">Departure: {{date .DepartureDate}}</div>{{end}}
        {{if .Duration}}<div class="detail">Duration: {{.Duration}}</div>{{end}}
        {{if .Cabin}}<div class="detail">Cabin: {{.Cabin}}</div>{{end}}
        {{if .ShowPrice}}{{with money .Price $.Quote.GlobalCurrency}}<div class="price">{{.}}</div>{{end}}{{end}}
        {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
        {{with gallery .Images "cruise"}}{{if .Images}}<div class="{{.Class}}">{{range .Images}}<img src="{{.}}" alt="" />{{end}}</div>{{end}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .ShowTotals}}
    <div class="totals">
      <div class="label">Total</div>
      {{range .Totals}}
      <div class="line">{{moneyValue .Amount .Currency}}</div>
      {{end}}
    </div>
    {{end}}

    {{if .Quote.Observations}}
    <div class="observations">{{.Quote.Observations}}</div>
    {{end}}

    {{if .Presentation.ValidityNotice}}
    <div class="validity">{{.Presentation.ValidityNotice}}</div>
    {{end}}

    <div class="footer">
      <div>
        {{if .Presentation.AgencyName}}<div><strong>{{.Presentation.AgencyName}}</strong></div>{{end}}
        {{if .Presentation.AgencyAddress}}<div>{{.Presentation.AgencyAddress}}</div>{{end}}
        {{if or .Presentation.AgencyEmail .Presentation.AgencyPhone}}<div>{{.Presentation.AgencyEmail}}{{if and .Presentation.AgencyEmail .Presentation.AgencyPhone}} &middot; {{end}}{{.Presentation.AgencyPhone}}</div>{{end}}
        <div>Generated at {{.GeneratedAt}}</div>
      </div>
      {{if .Logo}}<img src="{{.Logo}}" alt="" />{{end}}
    </div>
  </div>
</body>
</html>
`
